// Package server runs the door gRPC server.
//
// The service owns a single TimedDoor. Every successful unlock starts a watch:
// a goroutine that registers the door with a fresh Timer for the door's
// timeout and reports a violation if the door is still open when it fires.
package server
