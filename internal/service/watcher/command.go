package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/timed-door/internal/config"
	domain "github.com/oshokin/timed-door/internal/domain/door"
	"github.com/oshokin/timed-door/internal/logger"
	"github.com/oshokin/timed-door/internal/service/common"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// PollInterval defines the interval between checks.
	PollInterval time.Duration
}

// DefaultPollInterval is used when Options.PollInterval is not set.
const DefaultPollInterval = 5 * time.Second

// checker is the subset of common.Client the watcher uses.
type checker interface {
	CheckDoorState(ctx context.Context) error
}

// Run polls the door check until the context is cancelled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "door-watch")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching door", "server_address", serverAddress, "interval", interval.String())

	return poll(ctx, client, interval)
}

// poll runs check on every tick and returns nil once ctx is done.
func poll(ctx context.Context, client checker, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			check(ctx, client)
		}
	}
}

// check performs one poll and logs its outcome.
func check(ctx context.Context, client checker) {
	err := client.CheckDoorState(ctx)

	switch {
	case err == nil:
		logger.Debug(ctx, "Door closed")
	case errors.Is(err, domain.ErrTimeUp):
		logger.ErrorKV(ctx, "Door is open past its check", "error", err)
	default:
		logger.ErrorKV(ctx, "Check state failed", "error", err)
	}
}
