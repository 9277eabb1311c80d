package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchorkit/anchorkit/audit"
	"github.com/anchorkit/anchorkit/failure"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		out = append(out, rec)
	}
	return out
}

func TestWithLogging_RecordsExchange(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)), audit.DefaultConfig())

	mock := NewMockTransport()
	req := CheckHealthRequest{Endpoint: "https://anchor.example.com"}
	mock.Stub(req, Health{Status: HealthHealthy, LatencyMS: 9})

	wrapped := WithLogging(mock, logger)
	assert.Equal(t, "MockTransport+logging", wrapped.Name())
	assert.True(t, wrapped.Available())

	resp, err := wrapped.Send(context.Background(), req)
	require.NoError(t, err)
	require.IsType(t, Health{}, resp)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	reqLine, respLine := lines[0], lines[1]
	assert.Equal(t, "anchor request", reqLine["msg"])
	assert.Equal(t, "check_health", reqLine["method"])
	assert.Equal(t, "https://anchor.example.com", reqLine["endpoint"])

	assert.Equal(t, "anchor response", respLine["msg"])
	assert.Equal(t, "ok", respLine["status"])
	// The two records correlate through one request ID.
	assert.NotEmpty(t, reqLine["request_id"])
	assert.Equal(t, reqLine["request_id"], respLine["request_id"])
}

func TestWithLogging_ErrorStatusCarriesKind(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)), audit.DefaultConfig())

	mock := NewMockTransport()
	req := CheckHealthRequest{Endpoint: "https://anchor.example.com"}
	mock.StubError(req, failure.New(failure.KindRateLimited, "check_health", "slow down"))

	wrapped := WithLogging(mock, logger)
	_, err := wrapped.Send(context.Background(), req)
	require.Error(t, err)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "error_rate_limited", lines[1]["status"])
}

func TestWithLogging_RedactsSensitivePayload(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)), audit.DefaultConfig())

	mock := NewMockTransport()
	req := SubmitAttestationRequest{
		Endpoint: "https://anchor.example.com",
		Payload:  []byte(`{"seed_phrase":"abandon abandon"}`),
	}
	mock.Stub(req, AttestationReceipt{TransactionID: "tx-1"})

	wrapped := WithLogging(mock, logger)
	_, err := wrapped.Send(context.Background(), req)
	require.NoError(t, err)

	raw := buf.String()
	assert.NotContains(t, raw, "abandon")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "[REDACTED]", lines[0]["payload"])
}

func TestWithLogging_NilLoggerIsPassthrough(t *testing.T) {
	mock := NewMockTransport()
	assert.Same(t, Transport(mock), WithLogging(mock, nil))
}
