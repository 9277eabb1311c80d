package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/anchorkit/anchorkit/observe"
)

func TestObserver_CountsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewObserver(reg)
	ctx := context.Background()

	obs.OnStart(ctx, "anchor.get_quote")
	if got := testutil.ToFloat64(obs.inFlight); got != 1 {
		t.Fatalf("in flight = %v, want 1", got)
	}

	obs.OnAttempt(ctx, "anchor.get_quote", observe.AttemptRecord{
		Attempt: 0, Err: errors.New("down"), Retryable: true,
	})
	obs.OnAttempt(ctx, "anchor.get_quote", observe.AttemptRecord{Attempt: 1})
	obs.OnSuccess(ctx, "anchor.get_quote", observe.Trace{
		Op:              "anchor.get_quote",
		CumulativeDelay: 100 * time.Millisecond,
	})

	if got := testutil.ToFloat64(obs.inFlight); got != 0 {
		t.Fatalf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(obs.attempts.WithLabelValues("anchor.get_quote", "retryable_error")); got != 1 {
		t.Fatalf("retryable attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.attempts.WithLabelValues("anchor.get_quote", "success")); got != 1 {
		t.Fatalf("success attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.runs.WithLabelValues("anchor.get_quote", "succeeded")); got != 1 {
		t.Fatalf("succeeded runs = %v, want 1", got)
	}
}

func TestObserver_FailureOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewObserver(reg)
	ctx := context.Background()

	obs.OnStart(ctx, "anchor.submit_attestation")
	obs.OnAttempt(ctx, "anchor.submit_attestation", observe.AttemptRecord{
		Attempt: 0, Err: errors.New("bad input"),
	})
	obs.OnFailure(ctx, "anchor.submit_attestation", observe.Trace{Op: "anchor.submit_attestation"})

	obs.OnStart(ctx, "anchor.submit_attestation")
	obs.OnFailure(ctx, "anchor.submit_attestation", observe.Trace{
		Op:      "anchor.submit_attestation",
		Aborted: true,
	})

	if got := testutil.ToFloat64(obs.attempts.WithLabelValues("anchor.submit_attestation", "terminal_error")); got != 1 {
		t.Fatalf("terminal attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.runs.WithLabelValues("anchor.submit_attestation", "failed")); got != 1 {
		t.Fatalf("failed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.runs.WithLabelValues("anchor.submit_attestation", "aborted")); got != 1 {
		t.Fatalf("aborted runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.inFlight); got != 0 {
		t.Fatalf("in flight = %v, want 0", got)
	}
}

func TestNewObserver_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewObserver(reg)

	defer func() {
		if recover() == nil {
			t.Fatalf("second registration must panic on duplicate collectors")
		}
	}()
	NewObserver(reg)
}
