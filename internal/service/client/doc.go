// Package client implements the one-shot door commands: unlock, lock, status
// and check. Each command connects to the door server, performs one call and
// logs the resulting door state.
package client
