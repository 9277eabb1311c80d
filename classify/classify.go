// Package classify decides whether a failure kind is eligible for another
// attempt.
//
// The decision table is fixed and fail-closed: a kind is retryable only if
// it appears in the explicit retryable set below. Everything else,
// including the zero Kind and any value outside the taxonomy, is
// non-retryable.
package classify

import "github.com/anchorkit/anchorkit/failure"

// Retryable reports whether operations failing with kind k may be retried.
//
// The split is between conditions expected to resolve themselves with time
// (network blips, server-side rate limiting, eventual-consistency lag) and
// conditions that recur identically on retry (bad input, bad auth, security
// violations). Retrying the latter wastes resources and can mask real bugs.
func Retryable(k failure.Kind) bool {
	switch k {
	case failure.KindTransport,
		failure.KindTimeout,
		failure.KindRateLimited,
		failure.KindAnchorRateLimited,
		failure.KindEndpointUnavailable,
		failure.KindNotYetAvailable,
		failure.KindStaleData,
		failure.KindCacheMiss,
		failure.KindCacheExpired:
		return true
	default:
		return false
	}
}

// RetryableError reports whether err is eligible for another attempt.
//
// Errors that carry no failure.Kind are non-retryable: an error the
// taxonomy cannot account for is treated as deterministic.
func RetryableError(err error) bool {
	kind, ok := failure.KindOf(err)
	if !ok {
		return false
	}
	return Retryable(kind)
}
