package retry

import (
	"math"
	"time"
)

// Delay returns the wait before retry number n (1-indexed):
// InitialDelay * Multiplier^(n-1), clamped to MaxDelay.
//
// The math runs in float64 so large multipliers or attempt counts cannot
// overflow; any product at or beyond MaxDelay (including +Inf) clamps.
// n < 1 addresses the first attempt, which never waits.
func (c Config) Delay(n int) time.Duration {
	if n < 1 || c.InitialDelay <= 0 {
		return 0
	}

	raw := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(n-1))
	if math.IsNaN(raw) || raw < 0 {
		return 0
	}
	if raw >= float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(raw)
}
