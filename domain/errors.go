package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that the referenced request id does not exist.
	ErrNotFound = errors.New("video request not found")
	// ErrInvalidState reports that an action was requested while the job's
	// status does not permit it, including a conditional write losing a race.
	ErrInvalidState = errors.New("invalid state for requested action")
)

// ProviderError is an explicit failure reported by a remote service for a
// submitted job.
type ProviderError struct {
	Provider string
	JobID    string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s job %s failed: %s", e.Provider, e.JobID, e.Message)
}

// TimeoutError reports that polling exhausted its attempt budget without the
// provider reaching a terminal state. It is not a retry signal.
type TimeoutError struct {
	Provider string
	JobID    string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s job %s not terminal after %d polls", e.Provider, e.JobID, e.Attempts)
}

// PartialFailureError reports that frame generation produced a strict subset
// of the planned frames before an unrecoverable failure.
type PartialFailureError struct {
	Generated int
	Planned   int
	Cause     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("generated %d of %d frames: %v", e.Generated, e.Planned, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}
