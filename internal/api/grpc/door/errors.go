package door

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/timed-door/internal/domain/door"
)

// toStatus maps domain errors to gRPC status errors.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrStateConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrTimeUp):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, "unable to update door state")
	}
}

// ErrorFromStatus maps a status error returned by DoorService back to the
// domain sentinels, so callers can keep using errors.Is.
func ErrorFromStatus(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.FailedPrecondition:
		switch st.Message() {
		case domain.ErrAlreadyOpen.Error():
			return domain.ErrAlreadyOpen
		case domain.ErrAlreadyClosed.Error():
			return domain.ErrAlreadyClosed
		default:
			return fmt.Errorf("%s: %w", st.Message(), domain.ErrStateConflict)
		}
	case codes.Aborted:
		return domain.ErrTimeUp
	default:
		return err
	}
}
