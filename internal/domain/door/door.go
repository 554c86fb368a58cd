package door

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrStateConflict is returned when a transition is requested from a state
	// where it is not valid.
	ErrStateConflict = errors.New("door state conflict")
	// ErrAlreadyOpen is returned by Unlock on an open door.
	ErrAlreadyOpen = fmt.Errorf("door is already open: %w", ErrStateConflict)
	// ErrAlreadyClosed is returned by Lock on a closed door.
	ErrAlreadyClosed = fmt.Errorf("door is already closed: %w", ErrStateConflict)
	// ErrTimeUp is returned when a timeout notification finds the door still open.
	ErrTimeUp = errors.New("time's up: door is still open")
)

// Door is anything that can be locked, unlocked and asked whether it is open.
type Door interface {
	Lock() error
	Unlock() error
	IsOpen() bool
}

// TimedDoor is a door with a fixed timeout that reports a violation
// when it is found open on timeout.
type TimedDoor struct {
	// adapter bridges timer notifications to this door's state check.
	adapter *DoorTimeoutAdapter
	// timeout is the configured duration in seconds. Immutable.
	timeout int
	// isOpen is the current door state.
	isOpen bool
	// mu guards isOpen.
	mu sync.RWMutex
}

var _ Door = (*TimedDoor)(nil)

// NewTimedDoor creates a closed door with the given timeout in seconds.
func NewTimedDoor(timeout int) *TimedDoor {
	d := &TimedDoor{
		timeout: timeout,
	}

	d.adapter = NewDoorTimeoutAdapter(d)

	return d
}

// IsOpen reports whether the door is currently open.
func (d *TimedDoor) IsOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.isOpen
}

// Unlock opens the door. It fails with ErrAlreadyOpen if the door is open.
func (d *TimedDoor) Unlock() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isOpen {
		return ErrAlreadyOpen
	}

	d.isOpen = true

	return nil
}

// Lock closes the door. It fails with ErrAlreadyClosed if the door is closed.
func (d *TimedDoor) Lock() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpen {
		return ErrAlreadyClosed
	}

	d.isOpen = false

	return nil
}

// Timeout returns the timeout in seconds the door was created with.
func (d *TimedDoor) Timeout() int {
	return d.timeout
}

// CheckState runs the timeout notification against the current state.
// It returns ErrTimeUp if the door is open.
func (d *TimedDoor) CheckState() error {
	return d.adapter.OnTimeout()
}

// Adapter returns the timer client owned by the door.
//
//nolint:ireturn // Callers register it with a Timer, which only needs the interface.
func (d *TimedDoor) Adapter() TimerClient {
	return d.adapter
}
