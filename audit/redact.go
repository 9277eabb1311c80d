package audit

import (
	"bytes"
	"strings"
)

const (
	redactedPlaceholder  = "[REDACTED]"
	truncatedPlaceholder = "...[TRUNCATED]"
)

// sensitivePatterns flag payloads that must never reach logs verbatim.
var sensitivePatterns = []string{
	"password",
	"secret",
	"key",
	"token",
	"auth",
	"credential",
	"private",
	"seed",
	"mnemonic",
}

func containsSensitive(payload []byte) bool {
	lowered := bytes.ToLower(payload)
	for _, pattern := range sensitivePatterns {
		if bytes.Contains(lowered, []byte(pattern)) {
			return true
		}
	}
	return false
}

func truncate(payload []byte, max int) string {
	if len(payload) <= max {
		return string(payload)
	}
	var sb strings.Builder
	sb.Write(payload[:max])
	sb.WriteString(truncatedPlaceholder)
	return sb.String()
}
