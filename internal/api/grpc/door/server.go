package door

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/timed-door/internal/domain/door"
	"github.com/oshokin/timed-door/internal/wire"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Unlock(ctx context.Context, actor *domain.Actor) (*domain.State, error)
	Lock(ctx context.Context, actor *domain.Actor) (*domain.State, error)
	GetState(ctx context.Context) *domain.State
	CheckState(ctx context.Context) error
}

// Server implements DoorServiceServer on top of a Service.
type Server struct {
	// service provides the business logic for door operations.
	service Service
}

var _ DoorServiceServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetDoorState returns the current door state.
func (s *Server) GetDoorState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return wire.ToProto(s.service.GetState(ctx)), nil
}

// UnlockDoor opens the door on behalf of the calling actor.
func (s *Server) UnlockDoor(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	actor := ActorFromIncomingContext(ctx)
	if actor == nil {
		return nil, status.Error(codes.InvalidArgument, "actor is required")
	}

	state, err := s.service.Unlock(ctx, actor)
	if err != nil {
		return nil, toStatus(err)
	}

	return wire.ToProto(state), nil
}

// LockDoor closes the door on behalf of the calling actor.
func (s *Server) LockDoor(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	actor := ActorFromIncomingContext(ctx)
	if actor == nil {
		return nil, status.Error(codes.InvalidArgument, "actor is required")
	}

	state, err := s.service.Lock(ctx, actor)
	if err != nil {
		return nil, toStatus(err)
	}

	return wire.ToProto(state), nil
}

// CheckDoorState runs the timeout check now. It fails with Aborted when the door is open.
func (s *Server) CheckDoorState(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.service.CheckState(ctx); err != nil {
		return nil, toStatus(err)
	}

	return new(emptypb.Empty), nil
}
