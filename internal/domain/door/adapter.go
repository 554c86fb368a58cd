package door

// TimerClient receives a notification when a Timer fires.
type TimerClient interface {
	OnTimeout() error
}

// TimerClientFunc lets an ordinary function act as a TimerClient.
type TimerClientFunc func() error

// OnTimeout calls f.
func (f TimerClientFunc) OnTimeout() error {
	return f()
}

// DoorTimeoutAdapter turns a timer notification into a state check on a door.
type DoorTimeoutAdapter struct {
	// door is not owned by the adapter.
	door *TimedDoor
}

// NewDoorTimeoutAdapter binds an adapter to the given door.
func NewDoorTimeoutAdapter(door *TimedDoor) *DoorTimeoutAdapter {
	return &DoorTimeoutAdapter{
		door: door,
	}
}

// OnTimeout returns ErrTimeUp if the bound door is open.
func (a *DoorTimeoutAdapter) OnTimeout() error {
	if a.door.IsOpen() {
		return ErrTimeUp
	}

	return nil
}
