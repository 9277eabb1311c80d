// Package retry drives fallible operations to completion under a bounded
// exponential-backoff policy.
//
// An Engine repeatedly invokes a caller-supplied operation, classifies each
// failure through the classify table, waits between attempts, and stops on
// success, on the first non-retryable failure, on attempt exhaustion, or
// when the surrounding context ends. No jitter is applied: the delay
// sequence for a given Config is fully deterministic.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/anchorkit/anchorkit/classify"
	"github.com/anchorkit/anchorkit/observe"
)

// Operation is a fallible unit of work. It receives the zero-based attempt
// index; re-invocation with a new index must be a legitimate retry of the
// same logical request (idempotency is the caller's responsibility).
type Operation func(ctx context.Context, attempt int) error

// OperationValue is an Operation that produces a value.
type OperationValue[T any] func(ctx context.Context, attempt int) (T, error)

// Reason states why an engine run terminated.
type Reason int

const (
	ReasonUnknown Reason = iota
	// ReasonSucceeded: an attempt returned nil.
	ReasonSucceeded
	// ReasonExhausted: MaxAttempts retryable failures in a row.
	ReasonExhausted
	// ReasonNonRetryable: an attempt failed with a non-retryable error.
	ReasonNonRetryable
	// ReasonAborted: the context ended the run, possibly mid-wait.
	ReasonAborted
)

func (r Reason) String() string {
	switch r {
	case ReasonSucceeded:
		return "succeeded"
	case ReasonExhausted:
		return "exhausted"
	case ReasonNonRetryable:
		return "non_retryable"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome summarizes one full engine run. It is immutable after return and
// owned by the caller.
type Outcome struct {
	// Reason states how the run terminated.
	Reason Reason

	// Attempts is the number of operation invocations actually made.
	Attempts int

	// SuccessAttempt is the zero-based index of the successful attempt,
	// or -1 if the run failed.
	SuccessAttempt int

	// CumulativeDelay is the total time spent waiting between attempts.
	// Only fully completed waits count; an abort mid-wait does not.
	CumulativeDelay time.Duration

	// Err is the error from the last invocation, passed through verbatim;
	// ctx.Err() when the run was aborted; nil on success.
	Err error
}

// Succeeded reports whether some attempt returned nil.
func (o Outcome) Succeeded() bool { return o.Reason == ReasonSucceeded }

// Engine drives operations under a fixed Config.
//
// An Engine holds no mutable state; a single instance may be shared by any
// number of concurrent Do calls.
type Engine struct {
	cfg      Config
	observer observe.Observer
	clock    func() time.Time
	sleep    func(context.Context, time.Duration) error
}

// New builds an Engine, failing fast on an invalid Config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if e.observer == nil {
		e.observer = observe.NoopObserver{}
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.sleep == nil {
		e.sleep = sleepWithContext
	}
	return e, nil
}

// Config returns the configuration the Engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Do runs op to completion under the engine's policy. The returned error
// equals Outcome.Err.
func (e *Engine) Do(ctx context.Context, op string, fn Operation) (Outcome, error) {
	_, out, err := DoValue(ctx, e, op, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, fn(ctx, attempt)
	})
	return out, err
}

// DoValue runs fn to completion under the engine's policy and returns its
// value. On failure the value is fn's last returned value (usually the zero
// value) and the error equals Outcome.Err.
func DoValue[T any](ctx context.Context, e *Engine, op string, fn OperationValue[T]) (T, Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if e == nil {
		e = Default()
	}

	tr := observe.Trace{
		Op:       op,
		Start:    e.clock(),
		Attempts: make([]observe.AttemptRecord, 0, e.cfg.MaxAttempts),
	}
	e.observer.OnStart(ctx, op)

	finish := func(val T, out Outcome) (T, Outcome, error) {
		tr.End = e.clock()
		tr.CumulativeDelay = out.CumulativeDelay
		tr.Err = out.Err
		tr.Aborted = out.Reason == ReasonAborted
		if out.Succeeded() {
			e.observer.OnSuccess(ctx, op, tr)
		} else {
			e.observer.OnFailure(ctx, op, tr)
		}
		return val, out, out.Err
	}

	var (
		last      T
		cum       time.Duration
		prevDelay time.Duration
	)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return finish(last, Outcome{
				Reason:          ReasonAborted,
				Attempts:        attempt,
				SuccessAttempt:  -1,
				CumulativeDelay: cum,
				Err:             err,
			})
		}

		start := e.clock()
		val, err := fn(ctx, attempt)
		rec := observe.AttemptRecord{
			Attempt: attempt,
			Start:   start,
			End:     e.clock(),
			Delay:   prevDelay,
			Err:     err,
		}
		last = val

		if err == nil {
			tr.Attempts = append(tr.Attempts, rec)
			e.observer.OnAttempt(ctx, op, rec)
			return finish(val, Outcome{
				Reason:          ReasonSucceeded,
				Attempts:        attempt + 1,
				SuccessAttempt:  attempt,
				CumulativeDelay: cum,
			})
		}

		// An error that merely reflects the surrounding context ending is
		// an abort, not an operation failure.
		if ctxErr := ctx.Err(); ctxErr != nil &&
			(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			tr.Attempts = append(tr.Attempts, rec)
			e.observer.OnAttempt(ctx, op, rec)
			return finish(last, Outcome{
				Reason:          ReasonAborted,
				Attempts:        attempt + 1,
				SuccessAttempt:  -1,
				CumulativeDelay: cum,
				Err:             ctxErr,
			})
		}

		retryable := classify.RetryableError(err)
		rec.Retryable = retryable
		tr.Attempts = append(tr.Attempts, rec)
		e.observer.OnAttempt(ctx, op, rec)

		// Classification terminates before exhaustion: a non-retryable
		// error stops the run regardless of remaining attempt budget.
		if !retryable {
			return finish(last, Outcome{
				Reason:          ReasonNonRetryable,
				Attempts:        attempt + 1,
				SuccessAttempt:  -1,
				CumulativeDelay: cum,
				Err:             err,
			})
		}
		if attempt+1 == e.cfg.MaxAttempts {
			return finish(last, Outcome{
				Reason:          ReasonExhausted,
				Attempts:        attempt + 1,
				SuccessAttempt:  -1,
				CumulativeDelay: cum,
				Err:             err,
			})
		}

		delay := e.cfg.Delay(attempt + 1)
		if delay > 0 {
			if serr := e.sleep(ctx, delay); serr != nil {
				return finish(last, Outcome{
					Reason:          ReasonAborted,
					Attempts:        attempt + 1,
					SuccessAttempt:  -1,
					CumulativeDelay: cum,
					Err:             serr,
				})
			}
		}
		cum += delay
		prevDelay = delay
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
