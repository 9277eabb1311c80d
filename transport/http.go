package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anchorkit/anchorkit/failure"
)

const maxResponseBody = 1 << 20

// HTTPTransport talks JSON over HTTP to anchor services and maps every
// wire condition to a failure.Kind.
type HTTPTransport struct {
	client *http.Client
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		t.client = c
	}
}

// NewHTTPTransport builds an HTTPTransport with a 30s client timeout
// unless overridden.
func NewHTTPTransport(opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{Timeout: 30 * time.Second}
	}
	return t
}

func (t *HTTPTransport) Available() bool { return true }

func (t *HTTPTransport) Name() string { return "HTTPTransport" }

// apiError is the anchor protocol's error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type quoteWire struct {
	QuoteID    string `json:"quote_id"`
	BaseAsset  string `json:"base_asset"`
	QuoteAsset string `json:"quote_asset"`
	Rate       uint64 `json:"rate"`
	FeeBps     uint32 `json:"fee_bps"`
	MinAmount  uint64 `json:"min_amount"`
	MaxAmount  uint64 `json:"max_amount"`
	ExpiresAt  int64  `json:"expires_at"`
}

type receiptWire struct {
	TransactionID string `json:"transaction_id"`
}

type healthWire struct {
	Status    string `json:"status"`
	LatencyMS uint64 `json:"latency_ms"`
}

type kycWire struct {
	Status string `json:"status"`
	Level  string `json:"level"`
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) (Response, error) {
	op := req.method()

	httpReq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, mapTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, failure.Wrap(failure.KindTransport, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(body, &ae) // best effort; mapping falls back to status
		return nil, mapStatus(op, resp.StatusCode, ae)
	}

	return decodeResponse(op, req, body)
}

func buildHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	op := req.method()

	var (
		method  string
		rawURL  string
		payload []byte
	)

	switch r := req.(type) {
	case GetQuoteRequest:
		q := url.Values{}
		q.Set("base_asset", r.BaseAsset)
		q.Set("quote_asset", r.QuoteAsset)
		q.Set("amount", strconv.FormatUint(r.Amount, 10))
		method = http.MethodGet
		rawURL = r.Endpoint + "/quote?" + q.Encode()
	case SubmitAttestationRequest:
		method = http.MethodPost
		rawURL = r.Endpoint + "/attestations"
		payload = r.Payload
	case CheckHealthRequest:
		method = http.MethodGet
		rawURL = r.Endpoint + "/health"
	case VerifyKYCRequest:
		body, err := json.Marshal(map[string]string{"subject_id": r.SubjectID})
		if err != nil {
			return nil, failure.Wrap(failure.KindValidation, op, err)
		}
		method = http.MethodPost
		rawURL = r.Endpoint + "/kyc/verify"
		payload = body
	default:
		return nil, failure.New(failure.KindValidation, op, "unsupported request type")
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, failure.Wrap(failure.KindValidation, op, err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	return httpReq, nil
}

func decodeResponse(op string, req Request, body []byte) (Response, error) {
	protoErr := func(err error) error {
		return failure.Wrap(failure.KindProtocolViolation, op, err)
	}

	switch req.(type) {
	case GetQuoteRequest:
		var w quoteWire
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, protoErr(err)
		}
		return Quote{
			QuoteID:    w.QuoteID,
			BaseAsset:  w.BaseAsset,
			QuoteAsset: w.QuoteAsset,
			Rate:       w.Rate,
			FeeBps:     w.FeeBps,
			MinAmount:  w.MinAmount,
			MaxAmount:  w.MaxAmount,
			ExpiresAt:  time.Unix(w.ExpiresAt, 0).UTC(),
		}, nil
	case SubmitAttestationRequest:
		var w receiptWire
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, protoErr(err)
		}
		return AttestationReceipt{TransactionID: w.TransactionID}, nil
	case CheckHealthRequest:
		var w healthWire
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, protoErr(err)
		}
		switch HealthStatus(w.Status) {
		case HealthHealthy, HealthDegraded, HealthUnhealthy:
		default:
			return nil, failure.New(failure.KindProtocolViolation, op,
				fmt.Sprintf("unknown health status %q", w.Status))
		}
		return Health{Status: HealthStatus(w.Status), LatencyMS: w.LatencyMS}, nil
	case VerifyKYCRequest:
		var w kycWire
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, protoErr(err)
		}
		return KYCResult{Status: w.Status, Level: w.Level}, nil
	default:
		return nil, failure.New(failure.KindValidation, op, "unsupported request type")
	}
}

func mapTransportError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return failure.Wrap(failure.KindTimeout, op, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return failure.Wrap(failure.KindTimeout, op, err)
	}
	if errors.Is(err, context.Canceled) {
		// Surface cancellation as-is so the engine treats it as an abort.
		return err
	}
	return failure.Wrap(failure.KindTransport, op, err)
}

// mapStatus translates a non-2xx anchor reply into a failure kind.
//
// The anchor protocol's error code takes precedence over the HTTP status;
// statuses outside the table fail closed to KindUnknown.
func mapStatus(op string, status int, ae apiError) error {
	msg := ae.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch ae.Code {
	case "not_yet_available":
		return failure.New(failure.KindNotYetAvailable, op, msg)
	case "quote_expired", "price_expired", "token_expired":
		return failure.New(failure.KindStaleData, op, msg)
	case "replay_detected":
		return failure.New(failure.KindReplayDetected, op, msg)
	case "compliance_failed":
		return failure.New(failure.KindComplianceFailed, op, msg)
	case "anchor_rate_limited":
		return failure.New(failure.KindAnchorRateLimited, op, msg)
	}

	switch {
	case status == http.StatusRequestTimeout:
		return failure.New(failure.KindTimeout, op, msg)
	case status == http.StatusTooManyRequests:
		return failure.New(failure.KindRateLimited, op, msg)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return failure.New(failure.KindUnauthorized, op, msg)
	case status == http.StatusConflict:
		return failure.New(failure.KindReplayDetected, op, msg)
	case status == http.StatusUnavailableForLegalReasons:
		return failure.New(failure.KindComplianceFailed, op, msg)
	case status == http.StatusBadRequest ||
		status == http.StatusNotFound ||
		status == http.StatusUnprocessableEntity:
		return failure.New(failure.KindValidation, op, msg)
	case status >= 500 && status <= 599:
		return failure.New(failure.KindEndpointUnavailable, op, msg)
	default:
		return failure.New(failure.KindUnknown, op,
			fmt.Sprintf("unexpected status %d: %s", status, msg))
	}
}
