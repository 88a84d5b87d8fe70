package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the workflow and view services. Controllers map
// these onto HTTP status codes; the services themselves never retry.
var (
	// ErrSubmissionNotFound is returned when the referenced submission does
	// not exist or is soft-deleted.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrConflict is returned when a transition loses the optimistic-lock
	// race or targets a submission another editor already holds. Callers may
	// retry after re-reading state.
	ErrConflict = errors.New("submission was modified concurrently")
)

// TransitionError is a permission denial from the transition validator. The
// reason always names the role and both statuses so the caller can explain
// the refusal without further lookups.
type TransitionError struct {
	Role   string
	From   string
	To     string
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

// ValidationError marks a malformed request: missing actor identity or an
// unrecognized role value. It is fatal to the single operation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
