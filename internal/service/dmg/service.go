package dmg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/sshgui-packager/internal/bundle"
	"github.com/oshokin/sshgui-packager/internal/command"
	"github.com/oshokin/sshgui-packager/internal/config"
	"github.com/oshokin/sshgui-packager/internal/logger"
	"github.com/oshokin/sshgui-packager/internal/release"
)

// Options contains inputs for the disk image entry point.
type Options struct {
	// ConfigPath is an optional path to the packaging layout YAML.
	ConfigPath string
	// BundlePath overrides the primary bundle to package.
	BundlePath string
	// OutputPath overrides where the disk image is written.
	OutputPath string
	// ManifestPath, when set, writes a release description next to the image.
	ManifestPath string
	// Force skips the running-application guard.
	Force bool
}

const (
	// imageTool creates disk images on macOS.
	imageTool = "hdiutil"

	// imageToolHint tells the operator why the tool is absent.
	imageToolHint = "hdiutil ships with macOS; disk images can only be built there"

	// imageFormat is the compressed, read-only image variant.
	imageFormat = "UDZO"
)

// service assembles the distributable disk image from the primary bundle.
type service struct {
	// cfg holds the packaging layout.
	cfg *config.Config
	// runner launches the disk image utility.
	runner command.Runner
}

// Run executes the disk image workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "sshgui-dmg")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.OutputPath != "" {
		cfg.OutputImage = opts.OutputPath
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

	if err = svc.run(ctx, opts.BundlePath, opts.ManifestPath); err != nil {
		return fmt.Errorf("disk image packaging failed: %w", err)
	}

	logger.InfoKV(ctx, "Disk image written", "path", cfg.OutputImage)

	return nil
}

// newService creates the disk image service with the provided layout and runner.
func newService(cfg *config.Config, runner command.Runner) *service {
	return &service{
		cfg:    cfg,
		runner: runner,
	}
}

// run validates the bundle, clears the stale artifact, and builds the image.
// The bundle check happens before any external tool is involved; reruns are
// idempotent because the previous artifact is always removed first.
func (s *service) run(ctx context.Context, bundlePath, manifestPath string) error {
	if bundlePath == "" {
		bundlePath = filepath.Join(s.cfg.BundleDir, s.cfg.AppName+bundle.Extension)
	}

	if info, err := os.Stat(bundlePath); errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return fmt.Errorf("%s: %w", bundlePath, bundle.ErrBundleNotFound)
	} else if err != nil {
		return fmt.Errorf("stat bundle %s: %w", bundlePath, err)
	}

	if _, err := s.runner.LookPath(imageTool); err != nil {
		return fmt.Errorf("%w: %s", err, imageToolHint)
	}

	if err := os.Remove(s.cfg.OutputImage); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale image %s: %w", s.cfg.OutputImage, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.cfg.OutputImage), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger.InfoKV(ctx, "Creating disk image",
		"volume", s.cfg.AppName, "bundle", bundlePath, "format", imageFormat)

	_, err := s.runner.Run(ctx, imageTool, "create",
		"-volname", s.cfg.AppName,
		"-srcfolder", bundlePath,
		"-ov",
		"-format", imageFormat,
		s.cfg.OutputImage,
	)
	if err != nil {
		return fmt.Errorf("create disk image: %w", err)
	}

	if manifestPath == "" {
		return nil
	}

	return s.writeManifest(ctx, manifestPath)
}

// writeManifest records the image checksum for downstream verification.
func (s *service) writeManifest(ctx context.Context, path string) error {
	desc := release.NewDescription()
	if err := desc.AddFile(s.cfg.OutputImage); err != nil {
		return err
	}

	if err := desc.Save(path); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Release description written", "path", path)

	return nil
}
