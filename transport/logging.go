package transport

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/anchorkit/anchorkit/audit"
	"github.com/anchorkit/anchorkit/failure"
)

// loggingTransport records every exchange through an audit.Logger.
type loggingTransport struct {
	next  Transport
	log   *audit.Logger
	clock func() time.Time
}

// WithLogging wraps t so every Send emits an audit request/response pair
// correlated by a fresh request ID. A nil logger returns t unchanged.
func WithLogging(t Transport, log *audit.Logger) Transport {
	if log == nil {
		return t
	}
	return &loggingTransport{next: t, log: log, clock: time.Now}
}

func (l *loggingTransport) Send(ctx context.Context, req Request) (Response, error) {
	id := audit.NewRequestID()
	start := l.clock()

	l.log.Request(ctx, id, req.method(), req.endpoint(), requestPayload(req))

	resp, err := l.next.Send(ctx, req)

	elapsed := l.clock().Sub(start)
	if err != nil {
		l.log.Response(ctx, id, errorStatus(err), elapsed, nil)
		return nil, err
	}
	l.log.Response(ctx, id, "ok", elapsed, responsePayload(resp))
	return resp, nil
}

func (l *loggingTransport) Available() bool { return l.next.Available() }

func (l *loggingTransport) Name() string { return l.next.Name() + "+logging" }

func errorStatus(err error) string {
	if kind, ok := failure.KindOf(err); ok {
		return "error_" + kind.String()
	}
	return "error"
}

func requestPayload(req Request) []byte {
	switch r := req.(type) {
	case GetQuoteRequest:
		b, _ := json.Marshal(map[string]any{
			"base_asset":  r.BaseAsset,
			"quote_asset": r.QuoteAsset,
			"amount":      r.Amount,
		})
		return b
	case SubmitAttestationRequest:
		return r.Payload
	case VerifyKYCRequest:
		b, _ := json.Marshal(map[string]string{"subject_id": r.SubjectID})
		return b
	default:
		return nil
	}
}

func responsePayload(resp Response) []byte {
	switch r := resp.(type) {
	case Quote:
		b, _ := json.Marshal(map[string]any{
			"quote_id":   r.QuoteID,
			"rate":       r.Rate,
			"expires_at": r.ExpiresAt.Unix(),
		})
		return b
	case AttestationReceipt:
		b, _ := json.Marshal(map[string]string{"transaction_id": r.TransactionID})
		return b
	case Health:
		b, _ := json.Marshal(map[string]any{
			"status":     string(r.Status),
			"latency_ms": strconv.FormatUint(r.LatencyMS, 10),
		})
		return b
	case KYCResult:
		b, _ := json.Marshal(map[string]string{"status": r.Status, "level": r.Level})
		return b
	default:
		return nil
	}
}
