package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sshgui-packager/internal/config"
	"github.com/oshokin/sshgui-packager/internal/logger"
	"github.com/oshokin/sshgui-packager/internal/service/dmg"
	"github.com/oshokin/sshgui-packager/internal/version"
)

var (
	// configPath to the packaging layout YAML file.
	configPath string
	// logLevel is the minimum diagnostic level.
	logLevel string
	// manifestPath, when set, writes a release description next to the image.
	manifestPath string
	// force skips the running-application guard.
	force bool

	// rootCmd represents the base command for building the disk image.
	rootCmd = &cobra.Command{
		Use:   "sshgui-dmg [bundle-path] [output-dmg]",
		Short: "Package the application bundle into a compressed, read-only disk image.",
		Long: `Validates the primary application bundle, removes any stale artifact at
the output path, and builds a compressed, read-only disk image whose volume
name matches the application name.

Both arguments are optional and default to the conventional repository-relative
locations; they can also be set in the packaging configuration file.`,
		Args: cobra.MaximumNArgs(2),
		// Failures are reported as a single diagnostic line, not a usage dump.
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &dmg.Options{
				ConfigPath:   configPath,
				ManifestPath: manifestPath,
				Force:        force,
			}

			if len(args) > 0 {
				options.BundlePath = args[0]
			}

			if len(args) > 1 {
				options.OutputPath = args[1]
			}

			return dmg.Run(ctx, options)
		},
	}
)

// Execute runs the sshgui-dmg CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "diagnostic level (debug, info, warn, error)")
	rootCmd.Flags().
		StringVarP(&manifestPath, "manifest", "m", "", "write a release description (version + checksums) to this path")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "package even while the application is running")
}
