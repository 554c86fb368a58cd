package wire

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/timed-door/internal/domain/door"
)

// Field names of the door state message.
const (
	FieldIsOpen         = "is_open"
	FieldTimeoutSeconds = "timeout_seconds"
	FieldTimestamp      = "timestamp"
	FieldLastActor      = "last_actor"
	FieldHostname       = "hostname"
	FieldUsername       = "username"
)

// ErrMalformedState is returned when a message does not describe a door state.
var ErrMalformedState = errors.New("malformed door state")

// ToProto converts a domain State into its protobuf representation.
// A nil state yields an empty message.
func ToProto(state *domain.State) *structpb.Struct {
	fields := make(map[string]*structpb.Value, 4)
	if state == nil {
		return &structpb.Struct{Fields: fields}
	}

	fields[FieldIsOpen] = structpb.NewBoolValue(state.IsOpen)
	fields[FieldTimeoutSeconds] = structpb.NewNumberValue(float64(state.TimeoutSeconds))

	if !state.Timestamp.IsZero() {
		fields[FieldTimestamp] = structpb.NewStringValue(state.Timestamp.UTC().Format(time.RFC3339Nano))
	}

	if state.LastActor != nil {
		fields[FieldLastActor] = structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				FieldHostname: structpb.NewStringValue(state.LastActor.Hostname),
				FieldUsername: structpb.NewStringValue(state.LastActor.Username),
			},
		})
	}

	return &structpb.Struct{Fields: fields}
}

// FromProto converts a protobuf message back into a domain State.
// Missing fields keep their zero values.
func FromProto(msg *structpb.Struct) (*domain.State, error) {
	state := new(domain.State)

	fields := msg.GetFields()
	if len(fields) == 0 {
		return state, nil
	}

	if v, ok := fields[FieldIsOpen]; ok {
		b, isBool := v.GetKind().(*structpb.Value_BoolValue)
		if !isBool {
			return nil, fmt.Errorf("%w: %s is not a bool", ErrMalformedState, FieldIsOpen)
		}

		state.IsOpen = b.BoolValue
	}

	if v, ok := fields[FieldTimeoutSeconds]; ok {
		n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
		if !isNumber {
			return nil, fmt.Errorf("%w: %s is not a number", ErrMalformedState, FieldTimeoutSeconds)
		}

		state.TimeoutSeconds = int(n.NumberValue)
	}

	if v, ok := fields[FieldTimestamp]; ok {
		ts, err := time.Parse(time.RFC3339Nano, v.GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedState, FieldTimestamp, err)
		}

		state.Timestamp = ts
	}

	if v, ok := fields[FieldLastActor]; ok {
		actor := v.GetStructValue()
		if actor == nil {
			return nil, fmt.Errorf("%w: %s is not an object", ErrMalformedState, FieldLastActor)
		}

		state.LastActor = &domain.Actor{
			Hostname: actor.GetFields()[FieldHostname].GetStringValue(),
			Username: actor.GetFields()[FieldUsername].GetStringValue(),
		}
	}

	return state, nil
}
