package door

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTimedDoor_InitiallyClosed verifies a new door starts closed.
func TestTimedDoor_InitiallyClosed(t *testing.T) {
	t.Parallel()

	require.False(t, NewTimedDoor(5).IsOpen())
}

// TestTimedDoor_UnlockAndLock verifies the Closed->Open->Closed transitions.
func TestTimedDoor_UnlockAndLock(t *testing.T) {
	t.Parallel()

	d := NewTimedDoor(5)

	require.NoError(t, d.Unlock())
	require.True(t, d.IsOpen())

	require.NoError(t, d.Lock())
	require.False(t, d.IsOpen())
}

// TestTimedDoor_GuardedTransitions verifies repeated transitions fail with a state conflict.
func TestTimedDoor_GuardedTransitions(t *testing.T) {
	t.Parallel()

	d := NewTimedDoor(5)

	// Closed door cannot be locked again.
	err := d.Lock()
	require.ErrorIs(t, err, ErrAlreadyClosed)
	require.ErrorIs(t, err, ErrStateConflict)
	require.False(t, d.IsOpen())

	require.NoError(t, d.Unlock())

	// Open door cannot be unlocked again.
	err = d.Unlock()
	require.ErrorIs(t, err, ErrAlreadyOpen)
	require.ErrorIs(t, err, ErrStateConflict)
	require.True(t, d.IsOpen())
}

// TestTimedDoor_Timeout verifies the timeout is kept as given across transitions.
func TestTimedDoor_Timeout(t *testing.T) {
	t.Parallel()

	for _, timeout := range []int{0, 1, 5, 3600} {
		d := NewTimedDoor(timeout)
		require.Equal(t, timeout, d.Timeout())

		require.NoError(t, d.Unlock())
		require.NoError(t, d.Lock())
		require.Equal(t, timeout, d.Timeout())
	}
}

// TestTimedDoor_CheckState verifies CheckState fails exactly when the door is open.
func TestTimedDoor_CheckState(t *testing.T) {
	t.Parallel()

	d := NewTimedDoor(5)
	require.NoError(t, d.CheckState())

	require.NoError(t, d.Unlock())
	require.ErrorIs(t, d.CheckState(), ErrTimeUp)

	require.NoError(t, d.Lock())
	require.NoError(t, d.CheckState())
}

// TestTimedDoor_Scenario walks through the full open/check/close flow.
func TestTimedDoor_Scenario(t *testing.T) {
	t.Parallel()

	d := NewTimedDoor(5)

	require.False(t, d.IsOpen())
	require.Equal(t, 5, d.Timeout())

	require.NoError(t, d.Unlock())
	require.True(t, d.IsOpen())
	require.ErrorIs(t, d.CheckState(), ErrTimeUp)

	require.NoError(t, d.Lock())
	require.NoError(t, d.CheckState())
}

// TestDoorTimeoutAdapter_OnTimeout verifies an independently built adapter checks its door.
func TestDoorTimeoutAdapter_OnTimeout(t *testing.T) {
	t.Parallel()

	d := NewTimedDoor(1)
	adapter := NewDoorTimeoutAdapter(d)

	require.NoError(t, adapter.OnTimeout())

	require.NoError(t, d.Unlock())
	require.ErrorIs(t, adapter.OnTimeout(), ErrTimeUp)
}

// TestTimedDoor_Adapter verifies the owned adapter is bound to the door.
func TestTimedDoor_Adapter(t *testing.T) {
	t.Parallel()

	d := NewTimedDoor(1)
	require.NoError(t, d.Unlock())

	require.ErrorIs(t, d.Adapter().OnTimeout(), ErrTimeUp)
}

// TestTimerClientFunc verifies a function can act as a timer client.
func TestTimerClientFunc(t *testing.T) {
	t.Parallel()

	calls := 0

	var client TimerClient = TimerClientFunc(func() error {
		calls++

		return ErrTimeUp
	})

	require.ErrorIs(t, client.OnTimeout(), ErrTimeUp)
	require.Equal(t, 1, calls)
}
