package greeting

import (
	"errors"
	"fmt"
)

// ErrTimeout indicates the bounded wait elapsed before a response
// arrived. Adapters map client-side deadline faults onto this sentinel
// so classification stays transport-agnostic.
var ErrTimeout = errors.New("greeting request timed out")

// StatusError indicates the endpoint answered with a non-200 status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("greeting endpoint returned status %d", e.Code)
}

// Classify converts a fetch error into the failure state mandated for
// its category: non-200 embeds the numeric status, an elapsed bound
// yields the fixed timeout message, and anything else embeds the
// transport detail.
func Classify(err error) State {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return Failure(fmt.Sprintf("server error: status %d", statusErr.Code))
	case errors.Is(err, ErrTimeout):
		return Failure(MsgTimeout)
	default:
		return Failure(fmt.Sprintf("request failed: %v", err))
	}
}
