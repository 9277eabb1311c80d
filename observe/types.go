// Package observe defines the lifecycle callbacks an Engine emits while
// driving an operation, and the records those callbacks carry.
//
// The engine itself never logs; callers attach an Observer to get logging
// or metrics.
package observe

import (
	"context"
	"time"
)

// AttemptRecord describes a single invocation of the wrapped operation.
type AttemptRecord struct {
	// Attempt is the zero-based attempt index.
	Attempt int

	Start time.Time
	End   time.Time

	// Delay is the backoff waited before this attempt. Zero for attempt 0.
	Delay time.Duration

	// Err is the attempt's error, nil on success.
	Err error

	// Retryable reports how the failure was classified. False on success.
	Retryable bool
}

// Trace is the structured record of one full engine run.
type Trace struct {
	// Op labels the operation being driven ("anchor.get_quote").
	Op string

	Start time.Time
	End   time.Time

	Attempts []AttemptRecord

	// CumulativeDelay is the total wait incurred between attempts.
	CumulativeDelay time.Duration

	// Err is the terminal error, nil on success.
	Err error

	// Aborted is set when the surrounding context ended the run before the
	// engine itself decided to stop.
	Aborted bool
}

// Observer receives lifecycle callbacks for a single engine run.
type Observer interface {
	OnStart(ctx context.Context, op string)
	OnAttempt(ctx context.Context, op string, rec AttemptRecord)
	OnSuccess(ctx context.Context, op string, tr Trace)
	OnFailure(ctx context.Context, op string, tr Trace)
}
