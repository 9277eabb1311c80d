package retry

import (
	"time"

	"github.com/anchorkit/anchorkit/observe"
)

// Option configures an Engine.
type Option func(*Engine)

// WithObserver attaches an observer for lifecycle events.
func WithObserver(o observe.Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithClock overrides the time source used for attempt timestamps.
func WithClock(f func() time.Time) Option {
	return func(e *Engine) {
		e.clock = f
	}
}
