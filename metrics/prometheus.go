// Package metrics exports retry engine activity to Prometheus.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anchorkit/anchorkit/observe"
)

// Observer implements observe.Observer over Prometheus collectors.
type Observer struct {
	inFlight prometheus.Gauge
	attempts *prometheus.CounterVec
	runs     *prometheus.CounterVec
	delay    *prometheus.HistogramVec
}

// NewObserver builds an Observer and registers its collectors with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "anchorkit_retry_in_flight",
			Help: "Engine runs currently executing.",
		}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorkit_retry_attempts_total",
			Help: "Operation attempts by result.",
		}, []string{"op", "result"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorkit_retry_runs_total",
			Help: "Completed engine runs by outcome.",
		}, []string{"op", "outcome"}),
		delay: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "anchorkit_retry_cumulative_delay_seconds",
			Help:    "Total backoff wait per engine run.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"op"}),
	}
	reg.MustRegister(o.inFlight, o.attempts, o.runs, o.delay)
	return o
}

func (o *Observer) OnStart(_ context.Context, _ string) {
	o.inFlight.Inc()
}

func (o *Observer) OnAttempt(_ context.Context, op string, rec observe.AttemptRecord) {
	result := "success"
	if rec.Err != nil {
		if rec.Retryable {
			result = "retryable_error"
		} else {
			result = "terminal_error"
		}
	}
	o.attempts.WithLabelValues(op, result).Inc()
}

func (o *Observer) OnSuccess(_ context.Context, op string, tr observe.Trace) {
	o.finish(op, "succeeded", tr)
}

func (o *Observer) OnFailure(_ context.Context, op string, tr observe.Trace) {
	outcome := "failed"
	if tr.Aborted {
		outcome = "aborted"
	}
	o.finish(op, outcome, tr)
}

func (o *Observer) finish(op, outcome string, tr observe.Trace) {
	o.inFlight.Dec()
	o.runs.WithLabelValues(op, outcome).Inc()
	o.delay.WithLabelValues(op).Observe(tr.CumulativeDelay.Seconds())
}
