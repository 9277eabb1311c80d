// Package audit provides structured request/response logging for anchor
// traffic: request IDs, durations, and payload redaction.
package audit

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config controls what the Logger records.
type Config struct {
	// LogRequests and LogResponses gate the two record types.
	LogRequests  bool
	LogResponses bool

	// RedactSensitive replaces payloads containing sensitive patterns.
	RedactSensitive bool

	// MaxPayload is the payload length cap before truncation, in bytes.
	MaxPayload int
}

// DefaultConfig logs both directions, redacts, and caps payloads at 1KiB.
func DefaultConfig() Config {
	return Config{
		LogRequests:     true,
		LogResponses:    true,
		RedactSensitive: true,
		MaxPayload:      1024,
	}
}

// Logger emits request and response records through slog.
type Logger struct {
	log *slog.Logger
	cfg Config
}

// NewLogger builds a Logger over the given slog logger. A nil logger gets
// a tint handler on stderr.
func NewLogger(log *slog.Logger, cfg Config) *Logger {
	if log == nil {
		log = slog.New(tint.NewHandler(os.Stderr, nil))
	}
	if cfg.MaxPayload <= 0 {
		cfg.MaxPayload = DefaultConfig().MaxPayload
	}
	return &Logger{log: log, cfg: cfg}
}

// Request records an outgoing request.
func (l *Logger) Request(ctx context.Context, id RequestID, method, endpoint string, payload []byte) {
	if l == nil || !l.cfg.LogRequests {
		return
	}
	l.log.InfoContext(ctx, "anchor request",
		"request_id", string(id),
		"method", method,
		"endpoint", endpoint,
		"payload_size", len(payload),
		"payload", l.render(payload),
	)
}

// Response records the response to a previously logged request.
func (l *Logger) Response(ctx context.Context, id RequestID, status string, duration time.Duration, payload []byte) {
	if l == nil || !l.cfg.LogResponses {
		return
	}
	l.log.InfoContext(ctx, "anchor response",
		"request_id", string(id),
		"status", status,
		"duration", duration,
		"payload_size", len(payload),
		"payload", l.render(payload),
	)
}

func (l *Logger) render(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	if l.cfg.RedactSensitive && containsSensitive(payload) {
		return redactedPlaceholder
	}
	return truncate(payload, l.cfg.MaxPayload)
}
