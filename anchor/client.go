// Package anchor is the client kit for anchor services: quotes,
// attestations, KYC verification, and health checks, all driven through
// the retry engine.
package anchor

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/anchorkit/anchorkit/audit"
	"github.com/anchorkit/anchorkit/failure"
	"github.com/anchorkit/anchorkit/retry"
	"github.com/anchorkit/anchorkit/transport"
)

const defaultQuoteTTL = 30 * time.Second

// Client performs anchor operations for registered attestors.
//
// Every remote operation runs through the client's retry engine; the
// terminal retry.Outcome is returned alongside the result so callers can
// log attempt counts and cumulative delay.
type Client struct {
	transport transport.Transport
	engine    *retry.Engine
	clock     func() time.Time
	quoteTTL  time.Duration

	endpoints *EndpointRegistry
	quotes    *quoteCache
	replay    *replayGuard
	sessions  *sessionStore
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEngine sets the retry engine. Defaults to retry.Default().
func WithEngine(e *retry.Engine) ClientOption {
	return func(c *Client) {
		c.engine = e
	}
}

// WithClock overrides the client's time source.
func WithClock(f func() time.Time) ClientOption {
	return func(c *Client) {
		c.clock = f
	}
}

// WithQuoteTTL sets how long fetched quotes stay cached.
func WithQuoteTTL(d time.Duration) ClientOption {
	return func(c *Client) {
		c.quoteTTL = d
	}
}

// WithAuditLogger wraps the client's transport with request/response
// logging.
func WithAuditLogger(log *audit.Logger) ClientOption {
	return func(c *Client) {
		c.transport = transport.WithLogging(c.transport, log)
	}
}

// NewClient builds a Client over t.
func NewClient(t transport.Transport, opts ...ClientOption) (*Client, error) {
	if t == nil {
		return nil, failure.New(failure.KindInvalidConfig, "new_client", "transport is nil")
	}

	c := &Client{
		transport: t,
		quoteTTL:  defaultQuoteTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.engine == nil {
		c.engine = retry.Default()
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	c.endpoints = NewEndpointRegistry()
	c.quotes = newQuoteCache(c.clock)
	c.replay = newReplayGuard()
	c.sessions = newSessionStore(c.clock)
	return c, nil
}

// Endpoints exposes the endpoint registry for attestor management.
func (c *Client) Endpoints() *EndpointRegistry { return c.endpoints }

// GetQuote returns a quote for the given asset pair and amount from the
// attestor's anchor, serving from the quote cache when a live entry
// exists. Expired cached quotes are evicted and re-fetched.
func (c *Client) GetQuote(ctx context.Context, attestor, baseAsset, quoteAsset string, amount uint64) (transport.Quote, retry.Outcome, error) {
	ep, err := c.endpoints.Get(attestor)
	if err != nil {
		return transport.Quote{}, retry.Outcome{Reason: retry.ReasonNonRetryable, SuccessAttempt: -1, Err: err}, err
	}

	key := quoteKey{
		endpoint:   ep.URL,
		baseAsset:  baseAsset,
		quoteAsset: quoteAsset,
		amount:     amount,
	}
	req := transport.GetQuoteRequest{
		Endpoint:   ep.URL,
		BaseAsset:  baseAsset,
		QuoteAsset: quoteAsset,
		Amount:     amount,
	}

	return retry.DoValue(ctx, c.engine, "anchor.get_quote", func(ctx context.Context, _ int) (transport.Quote, error) {
		if cached, cerr := c.quotes.get(key); cerr == nil {
			return cached, nil
		}

		resp, serr := c.transport.Send(ctx, req)
		if serr != nil {
			return transport.Quote{}, serr
		}
		q, ok := resp.(transport.Quote)
		if !ok {
			return transport.Quote{}, failure.New(failure.KindProtocolViolation, "get_quote", "unexpected response type")
		}
		if q.Expired(c.clock()) {
			// The anchor handed back an already-dead quote; re-fetching
			// is the only recovery.
			return transport.Quote{}, failure.New(failure.KindStaleData, "get_quote", "anchor returned expired quote")
		}

		c.quotes.set(key, q, c.quoteTTL)
		return q, nil
	})
}

// SubmitAttestation submits payload to the attestor's anchor. A payload
// whose hash was already accepted is rejected locally as a replay, before
// any network traffic.
func (c *Client) SubmitAttestation(ctx context.Context, attestor string, payload []byte) (transport.AttestationReceipt, retry.Outcome, error) {
	fail := func(err error) (transport.AttestationReceipt, retry.Outcome, error) {
		return transport.AttestationReceipt{}, retry.Outcome{Reason: retry.ReasonNonRetryable, SuccessAttempt: -1, Err: err}, err
	}

	if len(payload) == 0 {
		return fail(failure.New(failure.KindValidation, "submit_attestation", "payload is empty"))
	}

	ep, err := c.endpoints.Get(attestor)
	if err != nil {
		return fail(err)
	}

	hash := sha256.Sum256(payload)
	if err := c.replay.check(hash); err != nil {
		return fail(err)
	}

	req := transport.SubmitAttestationRequest{Endpoint: ep.URL, Payload: payload}

	receipt, out, err := retry.DoValue(ctx, c.engine, "anchor.submit_attestation", func(ctx context.Context, _ int) (transport.AttestationReceipt, error) {
		resp, serr := c.transport.Send(ctx, req)
		if serr != nil {
			return transport.AttestationReceipt{}, serr
		}
		r, ok := resp.(transport.AttestationReceipt)
		if !ok {
			return transport.AttestationReceipt{}, failure.New(failure.KindProtocolViolation, "submit_attestation", "unexpected response type")
		}
		return r, nil
	})
	if err != nil {
		return transport.AttestationReceipt{}, out, err
	}

	c.replay.mark(hash)
	return receipt, out, nil
}

// VerifyKYC checks a subject's KYC standing with the attestor's anchor.
// A pending verification is surfaced as not-yet-available so the engine
// polls it; a rejected one fails terminally as a compliance failure.
func (c *Client) VerifyKYC(ctx context.Context, attestor, subjectID string) (transport.KYCResult, retry.Outcome, error) {
	ep, err := c.endpoints.Get(attestor)
	if err != nil {
		return transport.KYCResult{}, retry.Outcome{Reason: retry.ReasonNonRetryable, SuccessAttempt: -1, Err: err}, err
	}

	req := transport.VerifyKYCRequest{Endpoint: ep.URL, SubjectID: subjectID}

	return retry.DoValue(ctx, c.engine, "anchor.verify_kyc", func(ctx context.Context, _ int) (transport.KYCResult, error) {
		resp, serr := c.transport.Send(ctx, req)
		if serr != nil {
			return transport.KYCResult{}, serr
		}
		r, ok := resp.(transport.KYCResult)
		if !ok {
			return transport.KYCResult{}, failure.New(failure.KindProtocolViolation, "verify_kyc", "unexpected response type")
		}

		switch r.Status {
		case "approved":
			return r, nil
		case "pending":
			return transport.KYCResult{}, failure.New(failure.KindNotYetAvailable, "verify_kyc", "verification still pending")
		case "rejected":
			return transport.KYCResult{}, failure.New(failure.KindComplianceFailed, "verify_kyc", "subject rejected")
		default:
			return transport.KYCResult{}, failure.New(failure.KindProtocolViolation, "verify_kyc", "unknown kyc status "+r.Status)
		}
	})
}

// CheckHealth probes the attestor's anchor health endpoint.
func (c *Client) CheckHealth(ctx context.Context, attestor string) (transport.Health, retry.Outcome, error) {
	ep, err := c.endpoints.Get(attestor)
	if err != nil {
		return transport.Health{}, retry.Outcome{Reason: retry.ReasonNonRetryable, SuccessAttempt: -1, Err: err}, err
	}

	req := transport.CheckHealthRequest{Endpoint: ep.URL}

	return retry.DoValue(ctx, c.engine, "anchor.check_health", func(ctx context.Context, _ int) (transport.Health, error) {
		resp, serr := c.transport.Send(ctx, req)
		if serr != nil {
			return transport.Health{}, serr
		}
		h, ok := resp.(transport.Health)
		if !ok {
			return transport.Health{}, failure.New(failure.KindProtocolViolation, "check_health", "unexpected response type")
		}
		return h, nil
	})
}

// BeginSession opens a session for attestor.
func (c *Client) BeginSession(attestor string) Session {
	return c.sessions.begin(attestor)
}

// UseNonce consumes a one-time nonce within a session.
func (c *Client) UseNonce(sessionID, nonce string) error {
	return c.sessions.useNonce(sessionID, nonce)
}

// EndSession closes a session.
func (c *Client) EndSession(sessionID string) error {
	return c.sessions.end(sessionID)
}
