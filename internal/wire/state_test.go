package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/timed-door/internal/domain/door"
)

// TestToProto_FromProto verifies a full state survives conversion.
func TestToProto_FromProto(t *testing.T) {
	t.Parallel()

	want := &domain.State{
		Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC),
		LastActor: &domain.Actor{
			Hostname: "front-desk",
			Username: "m.saratova",
		},
		IsOpen:         true,
		TimeoutSeconds: 5,
	}

	got, err := FromProto(ToProto(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestToProto_Nil verifies a nil state becomes an empty message and back to a closed door.
func TestToProto_Nil(t *testing.T) {
	t.Parallel()

	msg := ToProto(nil)
	require.Empty(t, msg.GetFields())

	got, err := FromProto(msg)
	require.NoError(t, err)
	require.False(t, got.IsOpen)
	require.Nil(t, got.LastActor)
	require.True(t, got.Timestamp.IsZero())
}

// TestToProto_OmitsEmptyFields verifies zero timestamp and nil actor are left out.
func TestToProto_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	msg := ToProto(&domain.State{TimeoutSeconds: 1})

	require.Contains(t, msg.GetFields(), FieldIsOpen)
	require.Contains(t, msg.GetFields(), FieldTimeoutSeconds)
	require.NotContains(t, msg.GetFields(), FieldTimestamp)
	require.NotContains(t, msg.GetFields(), FieldLastActor)
}

// TestFromProto_Malformed verifies wrongly typed fields are rejected.
func TestFromProto_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]*structpb.Value{
		FieldIsOpen:         structpb.NewStringValue("yes"),
		FieldTimeoutSeconds: structpb.NewBoolValue(true),
		FieldTimestamp:      structpb.NewStringValue("yesterday"),
		FieldLastActor:      structpb.NewStringValue("someone"),
	}

	for field, value := range cases {
		msg := &structpb.Struct{Fields: map[string]*structpb.Value{field: value}}

		_, err := FromProto(msg)
		require.ErrorIs(t, err, ErrMalformedState, field)
	}
}
