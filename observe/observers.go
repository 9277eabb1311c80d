package observe

import "context"

// BaseObserver implements Observer with no-op methods.
//
// Embed it to implement only the callbacks you need.
type BaseObserver struct{}

func (BaseObserver) OnStart(context.Context, string)                  {}
func (BaseObserver) OnAttempt(context.Context, string, AttemptRecord) {}
func (BaseObserver) OnSuccess(context.Context, string, Trace)         {}
func (BaseObserver) OnFailure(context.Context, string, Trace)         {}

// MultiObserver fans out events to multiple observers. Nil entries are
// skipped.
type MultiObserver struct {
	Observers []Observer
}

func (m MultiObserver) OnStart(ctx context.Context, op string) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnStart(ctx, op)
		}
	}
}

func (m MultiObserver) OnAttempt(ctx context.Context, op string, rec AttemptRecord) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnAttempt(ctx, op, rec)
		}
	}
}

func (m MultiObserver) OnSuccess(ctx context.Context, op string, tr Trace) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnSuccess(ctx, op, tr)
		}
	}
}

func (m MultiObserver) OnFailure(ctx context.Context, op string, tr Trace) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnFailure(ctx, op, tr)
		}
	}
}
