// Package wire converts the door State to and from the protobuf message shared
// by the gRPC transport and the on-disk state file.
package wire
