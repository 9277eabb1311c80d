// Package transport abstracts communication with anchor services.
//
// A Transport performs one request/response exchange and maps every wire
// condition to a failure.Kind, so callers above it (and the retry engine
// they use) never see raw status codes. The package ships a deterministic
// MockTransport for tests and an HTTPTransport for real anchors.
package transport

import "context"

// Transport sends requests to an anchor and returns typed responses.
//
// Errors returned from Send carry a failure.Kind; the retry engine's
// classification depends on it.
type Transport interface {
	Send(ctx context.Context, req Request) (Response, error)

	// Available reports whether the transport can currently send.
	Available() bool

	// Name identifies the transport for debugging.
	Name() string
}
