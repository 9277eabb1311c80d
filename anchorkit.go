// Package anchorkit re-exports the most common entry points so simple
// callers need only one import.
package anchorkit

import (
	"context"

	"github.com/anchorkit/anchorkit/retry"
)

// Do executes op under the default retry engine.
func Do(ctx context.Context, op string, fn retry.Operation) (retry.Outcome, error) {
	return retry.Default().Do(ctx, op, fn)
}

// DoValue executes fn under the default retry engine and returns its value.
func DoValue[T any](ctx context.Context, op string, fn retry.OperationValue[T]) (T, retry.Outcome, error) {
	return retry.DoValue(ctx, retry.Default(), op, fn)
}
