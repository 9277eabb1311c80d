package retry

import (
	"fmt"
	"math"
	"time"
)

// Config is the immutable retry configuration for an Engine.
//
// InitialDelay larger than MaxDelay is not rejected; every computed delay
// is clamped to MaxDelay at computation time, so such a configuration
// degenerates to a constant MaxDelay between attempts.
type Config struct {
	// MaxAttempts is the total number of operation invocations allowed,
	// counting the first. Must be at least 1.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps every computed delay.
	MaxDelay time.Duration

	// Multiplier is the exponential growth factor, at least 1.
	Multiplier float64
}

// DefaultConfig returns the documented default configuration:
// 3 attempts, 100ms initial delay, 5s delay cap, doubling backoff.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5000 * time.Millisecond,
		Multiplier:   2,
	}
}

// ConfigError reports a single invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("retry config: %s %s", e.Field, e.Message)
}

// Validate checks field ranges. It is called by New, so an Engine can only
// be constructed from a valid Config.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return &ConfigError{Field: "max_attempts", Message: "must be at least 1"}
	}
	if c.InitialDelay < 0 {
		return &ConfigError{Field: "initial_delay", Message: "must not be negative"}
	}
	if c.MaxDelay < 0 {
		return &ConfigError{Field: "max_delay", Message: "must not be negative"}
	}
	if math.IsNaN(c.Multiplier) || math.IsInf(c.Multiplier, 0) {
		return &ConfigError{Field: "multiplier", Message: "must be finite"}
	}
	if c.Multiplier < 1 {
		return &ConfigError{Field: "multiplier", Message: "must be at least 1"}
	}
	return nil
}
