package door

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "timeddoor.v1.DoorService"

// Full method names used by clients.
const (
	GetDoorStateFullMethodName   = "/" + ServiceName + "/GetDoorState"
	UnlockDoorFullMethodName     = "/" + ServiceName + "/UnlockDoor"
	LockDoorFullMethodName       = "/" + ServiceName + "/LockDoor"
	CheckDoorStateFullMethodName = "/" + ServiceName + "/CheckDoorState"
)

// DoorServiceServer is the server API for DoorService.
type DoorServiceServer interface {
	GetDoorState(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	UnlockDoor(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	LockDoor(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	CheckDoorState(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
}

// DoorServiceDesc describes DoorService for grpc.ServiceRegistrar.
//
//nolint:gochecknoglobals // grpc.RegisterService takes the descriptor by pointer.
var DoorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DoorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDoorState",
			Handler:    unaryHandler(GetDoorStateFullMethodName, DoorServiceServer.GetDoorState),
		},
		{
			MethodName: "UnlockDoor",
			Handler:    unaryHandler(UnlockDoorFullMethodName, DoorServiceServer.UnlockDoor),
		},
		{
			MethodName: "LockDoor",
			Handler:    unaryHandler(LockDoorFullMethodName, DoorServiceServer.LockDoor),
		},
		{
			MethodName: "CheckDoorState",
			Handler:    unaryHandler(CheckDoorStateFullMethodName, DoorServiceServer.CheckDoorState),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "timeddoor/v1/door",
}

// RegisterDoorServiceServer registers srv on s.
func RegisterDoorServiceServer(s grpc.ServiceRegistrar, srv DoorServiceServer) {
	s.RegisterService(&DoorServiceDesc, srv)
}

// unaryHandler adapts a DoorServiceServer method taking Empty to a gRPC method handler.
func unaryHandler[Resp any](
	fullMethod string,
	call func(DoorServiceServer, context.Context, *emptypb.Empty) (Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(DoorServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			empty, _ := req.(*emptypb.Empty)

			return call(server, ctx, empty)
		}

		return interceptor(ctx, in, info, handler)
	}
}
