package audit

import "github.com/google/uuid"

// RequestID correlates a request record with its response record.
type RequestID string

// NewRequestID returns a fresh random RequestID.
func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}
