// Package door implements the gRPC transport for the door service.
//
// The DoorService messages are protobuf well-known types: requests are Empty
// and door states travel as a Struct built by the wire package. The caller's
// identity is carried in request metadata.
package door
