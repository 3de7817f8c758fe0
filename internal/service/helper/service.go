package helper

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/oshokin/sshgui-packager/internal/bundle"
	"github.com/oshokin/sshgui-packager/internal/command"
	"github.com/oshokin/sshgui-packager/internal/config"
	"github.com/oshokin/sshgui-packager/internal/logger"
)

// Options contains inputs for the helper derivation entry point.
type Options struct {
	// ConfigPath is an optional path to the packaging layout YAML.
	ConfigPath string
	// BundleDir overrides the directory holding the build step's bundle.
	BundleDir string
	// BuildOutput overrides the standalone executable produced by the build.
	BuildOutput string
	// Force skips the running-application guard.
	Force bool
}

// service derives the helper bundle from the primary one.
// It is unexported—callers should use Run, which encapsulates setup and validation.
type service struct {
	// cfg holds the packaging layout.
	cfg *config.Config
	// runner launches the external plist utility.
	runner command.Runner
}

// Run executes the helper bundle derivation workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "sshgui-helper")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.BundleDir != "" {
		cfg.BundleDir = opts.BundleDir
	}

	if opts.BuildOutput != "" {
		cfg.BuildOutput = opts.BuildOutput
	}

	if err = config.Validate(cfg); err != nil {
		return err
	}

	svc := newService(cfg, command.NewExecRunner())

	if !opts.Force {
		if err = bundle.EnsureNotRunning(ctx, cfg.PrimaryExecutable(), cfg.HelperExecutable); err != nil {
			return err
		}
	}

	if err = svc.run(ctx); err != nil {
		return fmt.Errorf("helper derivation failed: %w", err)
	}

	logger.Info(ctx, "Helper bundle derived successfully")

	return nil
}

// newService creates the derivation service with the provided layout and runner.
func newService(cfg *config.Config, runner command.Runner) *service {
	return &service{
		cfg:    cfg,
		runner: runner,
	}
}

// run clones the primary bundle, rewrites the clone's identity, and swaps in
// the helper executable. The executable name written into the manifest and
// the file installed on disk come from the same configuration value, which is
// the consistency the whole derivation exists to guarantee.
func (s *service) run(ctx context.Context) error {
	primary, err := bundle.Locate(s.cfg.BundleDir, s.cfg.AppName)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Located primary bundle", "path", primary.Path)

	helper := bundle.At(filepath.Join(s.cfg.BundleDir, s.cfg.HelperName+bundle.Extension))
	if err = bundle.Clone(primary, helper); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Cloned primary bundle", "path", helper.Path)

	if err = s.rewriteIdentity(ctx, helper); err != nil {
		return err
	}

	if err = bundle.SwapExecutable(helper, s.cfg.BuildOutput, s.cfg.HelperExecutable, s.cfg.PrimaryExecutable()); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Installed helper executable", "name", s.cfg.HelperExecutable)

	return nil
}

// rewriteIdentity sets the clone's name fields and the background-agent flag.
// The three string fields are fatal on failure: a helper with a partial
// identity is worse than no helper. The flag add is best-effort.
func (s *service) rewriteIdentity(ctx context.Context, helper bundle.Bundle) error {
	manifest := bundle.NewManifest(helper.ManifestPath(), s.runner)

	if err := manifest.SetDisplayName(ctx, s.cfg.HelperName); err != nil {
		return err
	}

	if err := manifest.SetBundleName(ctx, s.cfg.HelperName); err != nil {
		return err
	}

	if err := manifest.SetExecutable(ctx, s.cfg.HelperExecutable); err != nil {
		return err
	}

	switch err := manifest.AddBackgroundAgentFlag(ctx); {
	case errors.Is(err, bundle.ErrFlagAlreadySet):
		logger.Debug(ctx, "Background-agent flag already present")
	case err != nil:
		logger.WarnKV(ctx, "Could not add background-agent flag", "error", err)
	}

	return nil
}
