package icon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/oshokin/sshgui-packager/internal/command"
	"github.com/oshokin/sshgui-packager/internal/config"
	"github.com/oshokin/sshgui-packager/internal/icns"
	"github.com/oshokin/sshgui-packager/internal/logger"
)

// Options contains inputs for the icon generation entry point.
type Options struct {
	// ConfigPath is an optional path to the packaging layout YAML.
	ConfigPath string
	// Source overrides the vector icon source path.
	Source string
	// Output overrides the icon container output path.
	Output string
}

const (
	// rasterizerTool converts the vector source into a bitmap.
	rasterizerTool = "rsvg-convert"

	// rasterizerHint tells the operator how to get the missing tool.
	rasterizerHint = "install librsvg (brew install librsvg)"

	// targetResolution is the square pixel size of the rasterized icon.
	targetResolution = 1024
)

// errBadResolution indicates the rasterizer produced a bitmap of the wrong size.
var errBadResolution = errors.New("rasterized icon has wrong resolution")

// service turns the vector icon source into an icon container.
type service struct {
	// cfg holds the packaging layout.
	cfg *config.Config
	// runner launches the rasterizer.
	runner command.Runner
}

// Run executes the icon generation workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "sshgui-icon")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.Source != "" {
		cfg.IconSource = opts.Source
	}

	if opts.Output != "" {
		cfg.IconOutput = opts.Output
	}

	if err = config.Validate(cfg); err != nil {
		return err
	}

	svc := newService(cfg, command.NewExecRunner())

	if err = svc.run(ctx); err != nil {
		return fmt.Errorf("icon generation failed: %w", err)
	}

	logger.InfoKV(ctx, "Icon container written", "path", cfg.IconOutput)

	return nil
}

// newService creates the icon service with the provided layout and runner.
func newService(cfg *config.Config, runner command.Runner) *service {
	return &service{
		cfg:    cfg,
		runner: runner,
	}
}

// run rasterizes the vector source into scratch storage, validates the
// bitmap, and wraps it into the container. The availability check comes
// first: a missing rasterizer is an install problem, not a conversion
// problem, and is reported before the source is ever read.
func (s *service) run(ctx context.Context) error {
	if _, err := s.runner.LookPath(rasterizerTool); err != nil {
		return fmt.Errorf("%w: %s", err, rasterizerHint)
	}

	scratch, err := os.MkdirTemp("", "sshgui-icon")
	if err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}

	// The bitmap is transient; the container is the only artifact.
	defer func() {
		_ = os.RemoveAll(scratch)
	}()

	bitmapPath := filepath.Join(scratch, "icon-1024.png")
	if err = s.rasterize(ctx, bitmapPath); err != nil {
		return err
	}

	payload, err := os.ReadFile(filepath.Clean(bitmapPath))
	if err != nil {
		return fmt.Errorf("read rasterized icon: %w", err)
	}

	if err = validateBitmap(payload); err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(s.cfg.IconOutput), 0o755); err != nil {
		return fmt.Errorf("create icon output directory: %w", err)
	}

	return icns.Write(s.cfg.IconOutput, icns.Type1024, payload)
}

// rasterize invokes the external rasterizer at the fixed target resolution.
func (s *service) rasterize(ctx context.Context, bitmapPath string) error {
	size := strconv.Itoa(targetResolution)

	logger.InfoKV(ctx, "Rasterizing icon source",
		"source", s.cfg.IconSource, "resolution", size+"x"+size)

	_, err := s.runner.Run(ctx, rasterizerTool,
		"-w", size,
		"-h", size,
		"--format", "png",
		"-o", bitmapPath,
		s.cfg.IconSource,
	)
	if err != nil {
		return fmt.Errorf("rasterize %s: %w", s.cfg.IconSource, err)
	}

	return nil
}

// validateBitmap checks the payload is a PNG of the target resolution before
// it is wrapped, turning a bad rasterizer run into a diagnosable failure.
func validateBitmap(payload []byte) error {
	imgConfig, err := png.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("decode rasterized icon: %w", err)
	}

	if imgConfig.Width != targetResolution || imgConfig.Height != targetResolution {
		return fmt.Errorf("%dx%d: %w", imgConfig.Width, imgConfig.Height, errBadResolution)
	}

	return nil
}
