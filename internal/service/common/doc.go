// Package common holds helpers shared by the door client commands.
//
// It provides a gRPC client for DoorService with per-call timeouts and a
// helper that detects the current system actor for the audit trail.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
