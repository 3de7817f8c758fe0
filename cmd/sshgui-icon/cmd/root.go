package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sshgui-packager/internal/config"
	"github.com/oshokin/sshgui-packager/internal/logger"
	"github.com/oshokin/sshgui-packager/internal/service/icon"
	"github.com/oshokin/sshgui-packager/internal/version"
)

var (
	// configPath to the packaging layout YAML file.
	configPath string
	// logLevel is the minimum diagnostic level.
	logLevel string

	// rootCmd represents the base command for generating the icon container.
	rootCmd = &cobra.Command{
		Use:   "sshgui-icon [icon-source] [icns-output]",
		Short: "Rasterize the vector icon and wrap it into an icon container.",
		Long: `Rasterizes the vector icon source into a 1024x1024 bitmap using an
external rasterizer and wraps the bytes into the minimal icon container
format the build step embeds into the application bundle.

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

			options := &icon.Options{
				ConfigPath: configPath,
			}

			if len(args) > 0 {
				options.Source = args[0]
			}

			if len(args) > 1 {
				options.Output = args[1]
			}

			return icon.Run(ctx, options)
		},
	}
)

// Execute runs the sshgui-icon CLI and exits with non-zero status on error.
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
}
