package transport

import "time"

// Request is one of the typed anchor requests below. The interface is
// sealed; the set of request shapes is fixed by the anchor protocol.
type Request interface {
	method() string
	endpoint() string
}

// GetQuoteRequest asks an anchor for an exchange quote.
type GetQuoteRequest struct {
	Endpoint   string
	BaseAsset  string
	QuoteAsset string
	Amount     uint64
}

func (r GetQuoteRequest) method() string   { return "get_quote" }
func (r GetQuoteRequest) endpoint() string { return r.Endpoint }

// SubmitAttestationRequest submits a signed attestation payload.
type SubmitAttestationRequest struct {
	Endpoint string
	Payload  []byte
}

func (r SubmitAttestationRequest) method() string   { return "submit_attestation" }
func (r SubmitAttestationRequest) endpoint() string { return r.Endpoint }

// CheckHealthRequest probes an anchor's health endpoint.
type CheckHealthRequest struct {
	Endpoint string
}

func (r CheckHealthRequest) method() string   { return "check_health" }
func (r CheckHealthRequest) endpoint() string { return r.Endpoint }

// VerifyKYCRequest asks an anchor to verify a subject's KYC standing.
type VerifyKYCRequest struct {
	Endpoint  string
	SubjectID string
}

func (r VerifyKYCRequest) method() string   { return "verify_kyc" }
func (r VerifyKYCRequest) endpoint() string { return r.Endpoint }

// Response is one of the typed anchor responses below.
type Response interface {
	isResponse()
}

// Quote is an anchor's priced exchange offer.
type Quote struct {
	QuoteID    string
	BaseAsset  string
	QuoteAsset string

	// Rate is scaled by 1e4: 10000 means 1.0000.
	Rate uint64

	// FeeBps is the fee in basis points.
	FeeBps uint32

	MinAmount uint64
	MaxAmount uint64

	ExpiresAt time.Time
}

func (Quote) isResponse() {}

// Expired reports whether the quote is past its validity window.
func (q Quote) Expired(now time.Time) bool {
	return !q.ExpiresAt.IsZero() && now.After(q.ExpiresAt)
}

// AttestationReceipt confirms an accepted attestation.
type AttestationReceipt struct {
	TransactionID string
}

func (AttestationReceipt) isResponse() {}

// HealthStatus grades an anchor's health.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// Health is an anchor health probe result.
type Health struct {
	Status    HealthStatus
	LatencyMS uint64
}

func (Health) isResponse() {}

// KYCResult is an anchor's verdict on a subject's KYC standing.
type KYCResult struct {
	Status string
	Level  string
}

func (KYCResult) isResponse() {}
