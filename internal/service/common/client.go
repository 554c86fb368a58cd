//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/oshokin/timed-door/internal/api/grpc/door"
	"github.com/oshokin/timed-door/internal/config"
	domain "github.com/oshokin/timed-door/internal/domain/door"
	"github.com/oshokin/timed-door/internal/wire"
)

// Client wraps a DoorService connection with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the door server.
	conn grpc.ClientConnInterface
	// closer releases conn, nil when the connection is not owned.
	closer func() error

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when a transition is requested without an actor.
	errActorRequired = errors.New("actor must be provided")
)

// Dial establishes a gRPC connection to the door server.
// The transport is insecure; run it on a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial door server: %w", err)
	}

	client := &Client{
		conn:        conn,
		closer:      conn.Close,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}

	return c.closer()
}

// GetDoorState retrieves the current door state.
func (c *Client) GetDoorState(ctx context.Context) (*domain.State, error) {
	state, err := c.invokeState(ctx, api.GetDoorStateFullMethodName, nil)
	if err != nil {
		return nil, fmt.Errorf("get door state: %w", err)
	}

	return state, nil
}

// UnlockDoor opens the door on behalf of actor.
func (c *Client) UnlockDoor(ctx context.Context, actor *domain.Actor) (*domain.State, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	state, err := c.invokeState(ctx, api.UnlockDoorFullMethodName, actor)
	if err != nil {
		return nil, fmt.Errorf("unlock door: %w", err)
	}

	return state, nil
}

// LockDoor closes the door on behalf of actor.
func (c *Client) LockDoor(ctx context.Context, actor *domain.Actor) (*domain.State, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	state, err := c.invokeState(ctx, api.LockDoorFullMethodName, actor)
	if err != nil {
		return nil, fmt.Errorf("lock door: %w", err)
	}

	return state, nil
}

// CheckDoorState asks the server to run the timeout check now.
// It returns domain.ErrTimeUp when the door is open.
func (c *Client) CheckDoorState(ctx context.Context) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	err := c.conn.Invoke(callCtx, api.CheckDoorStateFullMethodName, new(emptypb.Empty), new(emptypb.Empty))
	if err != nil {
		return fmt.Errorf("check door state: %w", api.ErrorFromStatus(err))
	}

	return nil
}

// invokeState calls a method that answers with a door state.
func (c *Client) invokeState(ctx context.Context, method string, actor *domain.Actor) (*domain.State, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	callCtx = api.ActorToOutgoingContext(callCtx, actor)

	response := new(structpb.Struct)
	if err := c.conn.Invoke(callCtx, method, new(emptypb.Empty), response); err != nil {
		return nil, api.ErrorFromStatus(err)
	}

	return wire.FromProto(response)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
