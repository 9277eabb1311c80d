// Package failure defines the closed taxonomy of failure kinds produced by
// anchor operations, and an error type that carries a kind across package
// boundaries.
//
// The set of kinds is deliberately closed: every error surfaced by the
// transport or the client maps to exactly one Kind, so retry decisions stay
// exhaustive and auditable.
package failure

// Kind categorizes a failed anchor operation.
type Kind int

const (
	// KindUnknown is the zero value. It is never retried.
	KindUnknown Kind = iota

	// Transient conditions, expected to resolve with time.

	// KindTransport is a network-level failure: dial error, reset
	// connection, broken pipe.
	KindTransport
	// KindTimeout is a transport-level timeout on a single request.
	KindTimeout
	// KindRateLimited is server-side HTTP rate limiting (429).
	KindRateLimited
	// KindAnchorRateLimited is rate limiting signaled by the anchor
	// protocol itself rather than the HTTP layer.
	KindAnchorRateLimited
	// KindEndpointUnavailable is a temporarily unavailable endpoint
	// (502/503/504, maintenance windows).
	KindEndpointUnavailable
	// KindNotYetAvailable marks a referenced record that does not exist
	// yet because the write that creates it is still propagating.
	KindNotYetAvailable
	// KindStaleData marks data that has expired and can simply be
	// re-fetched: an expired quote, price, or token.
	KindStaleData
	// KindCacheMiss is a lookup that found no cached entry.
	KindCacheMiss
	// KindCacheExpired is a lookup that found an entry past its TTL.
	KindCacheExpired

	// Deterministic conditions that recur identically on retry.

	// KindInvalidConfig is a malformed or inconsistent configuration.
	KindInvalidConfig
	// KindUnauthorized is a rejected credential or missing permission.
	KindUnauthorized
	// KindValidation is malformed or invalid input data.
	KindValidation
	// KindReplayDetected is a replayed payload or session nonce.
	KindReplayDetected
	// KindComplianceFailed is a failed KYC or compliance check.
	KindComplianceFailed
	// KindProtocolViolation is a malformed wire payload.
	KindProtocolViolation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport_failure"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindAnchorRateLimited:
		return "anchor_rate_limited"
	case KindEndpointUnavailable:
		return "endpoint_unavailable"
	case KindNotYetAvailable:
		return "not_yet_available"
	case KindStaleData:
		return "stale_data"
	case KindCacheMiss:
		return "cache_miss"
	case KindCacheExpired:
		return "cache_expired"
	case KindInvalidConfig:
		return "invalid_config"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation_failed"
	case KindReplayDetected:
		return "replay_detected"
	case KindComplianceFailed:
		return "compliance_failed"
	case KindProtocolViolation:
		return "protocol_violation"
	default:
		return "unknown"
	}
}

// Kinds lists every defined kind, in declaration order. Exposed so tests can
// enumerate the taxonomy exhaustively.
func Kinds() []Kind {
	return []Kind{
		KindUnknown,
		KindTransport,
		KindTimeout,
		KindRateLimited,
		KindAnchorRateLimited,
		KindEndpointUnavailable,
		KindNotYetAvailable,
		KindStaleData,
		KindCacheMiss,
		KindCacheExpired,
		KindInvalidConfig,
		KindUnauthorized,
		KindValidation,
		KindReplayDetected,
		KindComplianceFailed,
		KindProtocolViolation,
	}
}
