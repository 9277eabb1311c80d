package observe

import (
	"context"
	"log/slog"
)

// SlogObserver logs engine lifecycle events through a *slog.Logger.
//
// Attempts are logged at Debug, terminal outcomes at Info (success) or
// Warn (failure). A nil logger falls back to slog.Default.
type SlogObserver struct {
	Logger *slog.Logger
}

func (s SlogObserver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s SlogObserver) OnStart(ctx context.Context, op string) {
	s.logger().DebugContext(ctx, "retry start", "op", op)
}

func (s SlogObserver) OnAttempt(ctx context.Context, op string, rec AttemptRecord) {
	if rec.Err == nil {
		s.logger().DebugContext(ctx, "attempt ok",
			"op", op,
			"attempt", rec.Attempt,
			"duration", rec.End.Sub(rec.Start),
		)
		return
	}
	s.logger().DebugContext(ctx, "attempt failed",
		"op", op,
		"attempt", rec.Attempt,
		"duration", rec.End.Sub(rec.Start),
		"retryable", rec.Retryable,
		"err", rec.Err,
	)
}

func (s SlogObserver) OnSuccess(ctx context.Context, op string, tr Trace) {
	s.logger().InfoContext(ctx, "retry succeeded",
		"op", op,
		"attempts", len(tr.Attempts),
		"cumulative_delay", tr.CumulativeDelay,
	)
}

func (s SlogObserver) OnFailure(ctx context.Context, op string, tr Trace) {
	s.logger().WarnContext(ctx, "retry failed",
		"op", op,
		"attempts", len(tr.Attempts),
		"cumulative_delay", tr.CumulativeDelay,
		"aborted", tr.Aborted,
		"err", tr.Err,
	)
}
