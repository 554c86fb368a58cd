package door

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	domain "github.com/oshokin/timed-door/internal/domain/door"
	"github.com/oshokin/timed-door/internal/wire"
)

var errTestPersist = errors.New("test persist error")

// fakeService implements Service on top of a real TimedDoor.
type fakeService struct {
	// door is the door the fake operates on.
	door *domain.TimedDoor
	// lastActor is the actor of the last successful transition.
	lastActor *domain.Actor
	// failWith, when set, is returned by Unlock and Lock.
	failWith error
}

func newFakeService() *fakeService {
	return &fakeService{door: domain.NewTimedDoor(5)}
}

func (f *fakeService) state() *domain.State {
	return &domain.State{
		Timestamp:      time.Now(),
		LastActor:      f.lastActor,
		IsOpen:         f.door.IsOpen(),
		TimeoutSeconds: f.door.Timeout(),
	}
}

// Unlock opens the fake door unless failWith is set.
func (f *fakeService) Unlock(_ context.Context, actor *domain.Actor) (*domain.State, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	if err := f.door.Unlock(); err != nil {
		return nil, err
	}

	f.lastActor = actor

	return f.state(), nil
}

// Lock closes the fake door unless failWith is set.
func (f *fakeService) Lock(_ context.Context, actor *domain.Actor) (*domain.State, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	if err := f.door.Lock(); err != nil {
		return nil, err
	}

	f.lastActor = actor

	return f.state(), nil
}

// GetState returns a snapshot of the fake door.
func (f *fakeService) GetState(context.Context) *domain.State { return f.state() }

// CheckState delegates to the door.
func (f *fakeService) CheckState(context.Context) error { return f.door.CheckState() }

func actorContext(hostname, username string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		ActorHostnameKey, hostname,
		ActorUsernameKey, username,
	))
}

// TestServer_RequiresActor ensures transitions without caller metadata return InvalidArgument.
func TestServer_RequiresActor(t *testing.T) {
	t.Parallel()

	s := NewServer(newFakeService())

	_, err := s.UnlockDoor(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.LockDoor(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_Roundtrip exercises unlock, check, lock and get on the server implementation.
func TestServer_Roundtrip(t *testing.T) {
	t.Parallel()

	s := NewServer(newFakeService())
	ctx := actorContext("test-hostname", "test-user")

	response, err := s.UnlockDoor(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	state, err := wire.FromProto(response)
	require.NoError(t, err)
	require.True(t, state.IsOpen)
	require.Equal(t, 5, state.TimeoutSeconds)
	require.Equal(t, &domain.Actor{Hostname: "test-hostname", Username: "test-user"}, state.LastActor)

	// Open door fails the check.
	_, err = s.CheckDoorState(ctx, new(emptypb.Empty))
	require.Equal(t, codes.Aborted, status.Code(err))

	_, err = s.LockDoor(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	_, err = s.CheckDoorState(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	response, err = s.GetDoorState(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	state, err = wire.FromProto(response)
	require.NoError(t, err)
	require.False(t, state.IsOpen)
}

// TestServer_ErrorMapping ensures domain errors become the expected status codes.
func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	ctx := actorContext("test-hostname", "test-user")

	// Locking a closed door is a state conflict.
	s := NewServer(newFakeService())
	_, err := s.LockDoor(ctx, new(emptypb.Empty))
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
	require.ErrorIs(t, ErrorFromStatus(err), domain.ErrAlreadyClosed)

	// Unlocking twice is a state conflict.
	_, err = s.UnlockDoor(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	_, err = s.UnlockDoor(ctx, new(emptypb.Empty))
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
	require.ErrorIs(t, ErrorFromStatus(err), domain.ErrAlreadyOpen)

	// Unknown failures are internal.
	failing := newFakeService()
	failing.failWith = errTestPersist
	_, err = NewServer(failing).UnlockDoor(ctx, new(emptypb.Empty))
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestErrorFromStatus verifies status codes map back to domain sentinels.
func TestErrorFromStatus(t *testing.T) {
	t.Parallel()

	require.NoError(t, ErrorFromStatus(nil))
	require.ErrorIs(t, ErrorFromStatus(status.Error(codes.Aborted, "x")), domain.ErrTimeUp)
	require.ErrorIs(t, ErrorFromStatus(status.Error(codes.FailedPrecondition, "x")), domain.ErrStateConflict)
	require.ErrorIs(t, ErrorFromStatus(errTestPersist), errTestPersist)

	err := status.Error(codes.Unavailable, "down")
	require.Equal(t, codes.Unavailable, status.Code(ErrorFromStatus(err)))
}

// TestActorMetadata verifies the actor survives a trip through metadata.
func TestActorMetadata(t *testing.T) {
	t.Parallel()

	require.Nil(t, ActorFromIncomingContext(context.Background()))

	actor := &domain.Actor{Hostname: "front-desk", Username: "m.saratova"}
	out := ActorToOutgoingContext(context.Background(), actor)

	md, ok := metadata.FromOutgoingContext(out)
	require.True(t, ok)

	in := metadata.NewIncomingContext(context.Background(), md)
	require.Equal(t, actor, ActorFromIncomingContext(in))

	require.Equal(t, context.Background(), ActorToOutgoingContext(context.Background(), nil))
}
