package door

import (
	"errors"
	"time"
)

var (
	// ErrClientRequired is returned when a nil client is registered.
	ErrClientRequired = errors.New("timer client must be provided")
	// ErrInvalidDuration is returned for negative wait durations.
	ErrInvalidDuration = errors.New("timer duration must not be negative")
)

// Timer waits for a duration and then notifies its client on the calling goroutine.
// A Timer is not safe for overlapping registrations.
type Timer struct {
	// client is the most recently registered client.
	client TimerClient
	// sleep blocks the caller for the given duration.
	sleep func(time.Duration)
}

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithSleeper replaces time.Sleep as the blocking wait.
func WithSleeper(sleep func(time.Duration)) TimerOption {
	return func(t *Timer) {
		if sleep != nil {
			t.sleep = sleep
		}
	}
}

// NewTimer creates a timer that blocks with time.Sleep unless overridden.
func NewTimer(opts ...TimerOption) *Timer {
	t := &Timer{
		sleep: time.Sleep,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// RegisterClient blocks for the given number of seconds and then calls
// client.OnTimeout exactly once, returning its error.
func (t *Timer) RegisterClient(seconds int, client TimerClient) error {
	if client == nil {
		return ErrClientRequired
	}

	if seconds < 0 {
		return ErrInvalidDuration
	}

	t.client = client
	t.sleepFor(seconds)

	return t.client.OnTimeout()
}

func (t *Timer) sleepFor(seconds int) {
	t.sleep(time.Duration(seconds) * time.Second)
}
