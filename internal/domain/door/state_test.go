package door

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "front-desk",
		Username: "m.saratova",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
}

// TestStateClone verifies that State.Clone copies fields and deep-copies LastActor.
func TestStateClone(t *testing.T) {
	t.Parallel()

	s := State{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		LastActor: &Actor{
			Hostname: "front-desk",
			Username: "m.saratova",
		},
		IsOpen:         true,
		TimeoutSeconds: 5,
	}

	c := s.Clone()
	require.Equal(t, s, *c)

	// Ensure actor pointer is cloned.
	require.NotSame(t, s.LastActor, c.LastActor)
}
