package scan

import (
	"context"
	"errors"
	"time"

	"stockeye/internal/marketdata"
)

// TaskState tracks one symbol's fetch pipeline through the retry
// machine: Pending -> Retrying(n) -> Succeeded | Failed | TimedOut.
type TaskState int

const (
	TaskPending TaskState = iota
	TaskRetrying
	TaskSucceeded
	TaskFailed
	TaskTimedOut
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "PENDING"
	case TaskRetrying:
		return "RETRYING"
	case TaskSucceeded:
		return "SUCCEEDED"
	case TaskFailed:
		return "FAILED"
	case TaskTimedOut:
		return "TIMED_OUT"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the state name in JSON output.
func (s TaskState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// retrier re-runs a fallible call with exponential backoff. Invalid
// symbols are permanent and never retried; a spent context marks the
// task timed-out rather than failed.
type retrier struct {
	maxRetries int
	backoff    time.Duration
}

func (r *retrier) do(ctx context.Context, fn func() error) (TaskState, int, error) {
	delay := r.backoff
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return TaskTimedOut, attempts, err
		}

		attempts++
		err := fn()
		if err == nil {
			return TaskSucceeded, attempts, nil
		}
		if errors.Is(err, marketdata.ErrInvalidSymbol) {
			return TaskFailed, attempts, err
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return TaskTimedOut, attempts, err
		}
		if attempts > r.maxRetries {
			return TaskFailed, attempts, err
		}

		select {
		case <-ctx.Done():
			return TaskTimedOut, attempts, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
