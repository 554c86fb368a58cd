package door

import "time"

// Actor identifies who changed the door state.
type Actor struct {
	// Hostname is the machine name where the action was performed.
	Hostname string
	// Username is the system user who triggered the action.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// State is a snapshot of a door at a specific point in time.
type State struct {
	// Timestamp is when the door state was last changed.
	Timestamp time.Time
	// LastActor is who last locked or unlocked the door.
	LastActor *Actor
	// IsOpen indicates whether the door is open.
	IsOpen bool
	// TimeoutSeconds is the door's configured timeout.
	TimeoutSeconds int
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	return &State{
		Timestamp:      s.Timestamp,
		LastActor:      s.LastActor.Clone(),
		IsOpen:         s.IsOpen,
		TimeoutSeconds: s.TimeoutSeconds,
	}
}
