package client

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

// Action is a one-shot door command.
type Action string

// Supported actions.
const (
	ActionUnlock Action = "unlock"
	ActionLock   Action = "lock"
	ActionStatus Action = "status"
	ActionCheck  Action = "check"
)

// Options configures a door client command.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Action selects the command to run.
	Action Action
}

// ErrUnknownAction is returned for an unsupported Action.
var ErrUnknownAction = errors.New("unknown action")

// Run connects to the door server and performs opts.Action.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "door-"+string(opts.Action))

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
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

	return perform(ctx, client, opts.Action)
}

// doorClient is the subset of common.Client the commands use.
type doorClient interface {
	GetDoorState(ctx context.Context) (*domain.State, error)
	UnlockDoor(ctx context.Context, actor *domain.Actor) (*domain.State, error)
	LockDoor(ctx context.Context, actor *domain.Actor) (*domain.State, error)
	CheckDoorState(ctx context.Context) error
}

// perform runs a single action against client.
func perform(ctx context.Context, client doorClient, action Action) error {
	var (
		state *domain.State
		err   error
	)

	switch action {
	case ActionUnlock, ActionLock:
		actor, detectErr := common.DetectActor()
		if detectErr != nil {
			return fmt.Errorf("detect actor: %w", detectErr)
		}

		if action == ActionUnlock {
			state, err = client.UnlockDoor(ctx, actor)
		} else {
			state, err = client.LockDoor(ctx, actor)
		}
	case ActionStatus:
		state, err = client.GetDoorState(ctx)
	case ActionCheck:
		if err = client.CheckDoorState(ctx); err != nil {
			return err
		}

		logger.Info(ctx, "Door is closed, timeout check passed")

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil {
		return err
	}

	logger.Infof(ctx, "Door %s", formatState(state))

	return nil
}

// formatState converts a door state to a readable log message.
func formatState(state *domain.State) string {
	if state == nil {
		return "<nil state>"
	}

	timestamp := "<unknown>"
	if !state.Timestamp.IsZero() {
		timestamp = state.Timestamp.Format(time.RFC3339)
	}

	actor := "<unknown>"
	if state.LastActor != nil {
		actor = fmt.Sprintf("%s@%s", state.LastActor.Username, state.LastActor.Hostname)
	}

	status := "closed"
	if state.IsOpen {
		status = "open"
	}

	return fmt.Sprintf("%s by %s (%s), timeout %ds", status, actor, timestamp, state.TimeoutSeconds)
}
