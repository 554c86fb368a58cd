package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/timed-door/internal/config"
	"github.com/oshokin/timed-door/internal/logger"
	"github.com/oshokin/timed-door/internal/service/client"
	"github.com/oshokin/timed-door/internal/service/watcher"
	"github.com/oshokin/timed-door/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel is the minimum level written to stdout.
	logLevel string
	// pollInterval is the delay between checks of the watch command.
	pollInterval time.Duration

	// rootCmd is the door client entry point; it only hosts subcommands.
	rootCmd = &cobra.Command{
		Use:   "door",
		Short: "Operate the timed door.",
		Long: `Client for the timed door server.

Unlocking the door starts the server-side timer. Lock the door again before
the configured timeout expires, or the server reports a timeout violation.
Every subcommand takes an optional server address that overrides server_addr.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
	}
)

// actionCommand builds a subcommand running a one-shot client action.
func actionCommand(action client.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " [server-address]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.Run(cmd.Context(), &client.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress(args),
				Action:        action,
			})
		},
	}
}

// watchCmd polls the timeout check until interrupted.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var watchCmd = &cobra.Command{
	Use:   "watch [server-address]",
	Short: "Poll the timeout check and log violations.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watcher.Run(cmd.Context(), &watcher.Options{
			ConfigPath:    configPath,
			ServerAddress: serverAddress(args),
			PollInterval:  pollInterval,
		})
	},
}

func serverAddress(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return ""
}

// Execute runs the door CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	watchCmd.Flags().
		DurationVarP(&pollInterval, "interval", "i", watcher.DefaultPollInterval, "delay between timeout checks")

	rootCmd.AddCommand(
		actionCommand(client.ActionUnlock, "Open the door and start its timeout."),
		actionCommand(client.ActionLock, "Close the door."),
		actionCommand(client.ActionStatus, "Print the current door state."),
		actionCommand(client.ActionCheck, "Run the timeout check now; fails if the door is open."),
		watchCmd,
	)
}
