package polling

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"time"
)

type JobState string

const (
	JobStatePending   JobState = "pending"
	JobStateRunning   JobState = "running"
	JobStateSucceeded JobState = "succeeded"
	JobStateFailed    JobState = "failed"
)

// JobStatus is one observation of an asynchronous provider job. Result is
// meaningful only when State is succeeded, Message only when failed.
type JobStatus[T any] struct {
	State   JobState
	Result  T
	Message string
}

type FetchStatusFunc[T any] func(ctx context.Context, jobID string) (JobStatus[T], error)

// Await polls a provider job at a fixed interval until it reaches a terminal
// state, for at most maxAttempts polls. A succeeded state returns the result
// immediately; a failed state returns a ProviderError carrying the provider's
// message. A transient fetch error does not terminate the poll: it is logged
// and consumes one attempt. Exhausting the budget returns a TimeoutError,
// which callers must not treat as a retry signal.
func Await[T any](ctx context.Context, provider string, jobID string, fetch FetchStatusFunc[T],
	interval time.Duration, maxAttempts int, logger outbound.LoggerPort) (T, error) {
	var zero T

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, err := fetch(ctx, jobID)
		if err != nil {
			logger.WarnWithFields("transient error polling provider job", map[string]interface{}{
				"provider": provider,
				"job_id":   jobID,
				"attempt":  attempt,
				"error":    err.Error(),
			})
		} else {
			switch status.State {
			case JobStateSucceeded:
				return status.Result, nil
			case JobStateFailed:
				return zero, &domain.ProviderError{Provider: provider, JobID: jobID, Message: status.Message}
			}
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(interval):
		}
	}

	return zero, &domain.TimeoutError{Provider: provider, JobID: jobID, Attempts: maxAttempts}
}
