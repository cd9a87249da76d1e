package petapi

import (
	"errors"
	"fmt"
)

// Operation names reported in UnavailableError.
const (
	OpList   = "list"
	OpCreate = "create"
	OpRemove = "remove"
)

// ErrUnavailable matches every gateway failure: transport errors, timeouts,
// non-2xx statuses, and malformed payloads.
var ErrUnavailable = errors.New("backend unavailable")

// UnavailableError describes a failed backend call.
type UnavailableError struct {
	Op         string
	StatusCode int
	Message    string // server error text, when the backend sent one
	Err        error
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s pets: %v", e.Op, e.Err)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports ErrUnavailable for every UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func (e *UnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reason returns the most useful text for a user-facing notice: the server's
// message when present, otherwise the transport error.
func Reason(err error) string {
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		if unavailable.Message != "" {
			return unavailable.Message
		}
		if unavailable.Err != nil {
			return unavailable.Err.Error()
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
