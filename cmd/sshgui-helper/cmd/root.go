package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sshgui-packager/internal/config"
	"github.com/oshokin/sshgui-packager/internal/logger"
	"github.com/oshokin/sshgui-packager/internal/service/helper"
	"github.com/oshokin/sshgui-packager/internal/version"
)

var (
	// configPath to the packaging layout YAML file.
	configPath string
	// logLevel is the minimum diagnostic level.
	logLevel string
	// force skips the running-application guard.
	force bool

	// rootCmd represents the base command for deriving the helper bundle.
	rootCmd = &cobra.Command{
		Use:   "sshgui-helper [bundle-dir] [build-output]",
		Short: "Derive the settings helper bundle from the primary application bundle.",
		Long: `Clones the application bundle produced by the build step, rewrites the
clone's identity (display name, bundle name, invocation name), marks it as a
background agent, and installs a renamed copy of the build output as its
executable.

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

			options := &helper.Options{
				ConfigPath: configPath,
				Force:      force,
			}

			if len(args) > 0 {
				options.BundleDir = args[0]
			}

			if len(args) > 1 {
				options.BuildOutput = args[1]
			}

			return helper.Run(ctx, options)
		},
	}
)

// Execute runs the sshgui-helper CLI and exits with non-zero status on error.
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
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "derive even while the application is running")
}
