package store

import (
	"context"
	"errors"
	"fmt"
)

const (
	GenericErrorMessage   = "Network error. Please try again."
	CancelledErrorMessage = "Request cancelled."
)

var (
	ErrTransport   = errors.New("transport failure")
	ErrNotCached   = errors.New("entity not in cache")
	ErrEmptyID     = errors.New("entity id cannot be empty")
	ErrBadEnvelope = errors.New("unrecognized payload shape")
)

type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

type PreconditionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user for a failed operation.
// Server messages are surfaced verbatim, local precondition failures keep
// their own reason, and everything else collapses to GenericErrorMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var pre *PreconditionError
	if errors.As(err, &pre) {
		return pre.Reason
	}

	var srv *ServerError
	if errors.As(err, &srv) && srv.Message != "" {
		return srv.Message
	}

	if errors.Is(err, context.Canceled) {
		return CancelledErrorMessage
	}

	return GenericErrorMessage
}
