// Package state persists the door State as protojson on disk.
package state
