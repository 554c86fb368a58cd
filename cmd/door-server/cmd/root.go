package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/timed-door/internal/config"
	"github.com/oshokin/timed-door/internal/logger"
	"github.com/oshokin/timed-door/internal/service/server"
	"github.com/oshokin/timed-door/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where door state is persisted.
	stateFile string
	// logLevel is the minimum level written to stdout.
	logLevel string

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "door-server [listen-address]",
		Short: "Run the timed door gRPC server.",
		Long: `Starts the gRPC server that owns a single timed door.

Every unlock starts a timer for the configured door timeout. When the timer
fires and the door is still open, the server logs a timeout violation.
Only the port from server_addr is used for listening unless a listen address
is given as an argument (e.g., :9090, 0.0.0.0:8080).
Door state is persisted to a JSON file and restored on start.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				StateFile:     stateFile,
			})
		},
	}
)

// Execute runs the door-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "path to persist door state (overrides state_file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}
