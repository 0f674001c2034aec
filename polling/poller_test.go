package polling

import (
	"context"
	"errors"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type testLogger struct {
	warnings int
}

func (l *testLogger) Info(string)                                     {}
func (l *testLogger) InfoWithFields(string, map[string]interface{})   {}
func (l *testLogger) Error(error, string)                             {}
func (l *testLogger) ErrorWithFields(error, string, map[string]interface{}) {
}
func (l *testLogger) Debug(string)                                   {}
func (l *testLogger) DebugWithFields(string, map[string]interface{}) {}
func (l *testLogger) Warn(string)                                    {}
func (l *testLogger) WarnWithFields(string, map[string]interface{}) {
	l.warnings++
}

func TestAwait_SucceedsMidway(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, jobID string) (JobStatus[string], error) {
		calls++
		if calls < 3 {
			return JobStatus[string]{State: JobStateRunning}, nil
		}
		return JobStatus[string]{State: JobStateSucceeded, Result: "payload"}, nil
	}

	result, err := Await[string](context.Background(), "dalle", "job-1", fetch,
		time.Millisecond, 10, &testLogger{})

	require.NoError(t, err)
	assert.Equal(t, "payload", result)
	assert.Equal(t, 3, calls)
}

func TestAwait_FailedJobReturnsProviderError(t *testing.T) {
	fetch := func(ctx context.Context, jobID string) (JobStatus[string], error) {
		return JobStatus[string]{State: JobStateFailed, Message: "content policy"}, nil
	}

	_, err := Await[string](context.Background(), "dalle", "job-2", fetch,
		time.Millisecond, 10, &testLogger{})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "dalle", providerErr.Provider)
	assert.Equal(t, "job-2", providerErr.JobID)
	assert.Equal(t, "content policy", providerErr.Message)
}

func TestAwait_ExhaustsExactlyMaxAttempts(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, jobID string) (JobStatus[string], error) {
		calls++
		return JobStatus[string]{State: JobStateRunning}, nil
	}

	_, err := Await[string](context.Background(), "transcriber", "job-3", fetch,
		time.Millisecond, 5, &testLogger{})

	var timeoutErr *domain.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, timeoutErr.Attempts)
}

func TestAwait_TransientFetchErrorsConsumeAttempts(t *testing.T) {
	logger := &testLogger{}
	calls := 0
	fetch := func(ctx context.Context, jobID string) (JobStatus[string], error) {
		calls++
		if calls == 1 {
			return JobStatus[string]{}, errors.New("connection reset")
		}
		return JobStatus[string]{State: JobStateRunning}, nil
	}

	_, err := Await[string](context.Background(), "lipsync", "job-4", fetch,
		time.Millisecond, 3, logger)

	var timeoutErr *domain.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, logger.warnings)
}

func TestAwait_ContextCancelledBetweenPolls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context, jobID string) (JobStatus[string], error) {
		cancel()
		return JobStatus[string]{State: JobStateRunning}, nil
	}

	_, err := Await[string](ctx, "renderer", "job-5", fetch,
		time.Minute, 3, &testLogger{})

	require.ErrorIs(t, err, context.Canceled)
}
