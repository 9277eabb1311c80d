// Package config loads named retry profiles from YAML.
//
// A profile file looks like:
//
//	profiles:
//	  default:
//	    max_attempts: 3
//	    initial_delay: 100ms
//	    max_delay: 5s
//	    multiplier: 2
//	  quotes:
//	    max_attempts: 5
//	    initial_delay: 250ms
//	    max_delay: 10s
//	    multiplier: 1.5
//
// Profiles become validated retry.Config values; there is no ambient
// default that can be mutated at runtime.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/anchorkit/anchorkit/retry"
)

type profileWire struct {
	MaxAttempts  int     `yaml:"max_attempts"`
	InitialDelay string  `yaml:"initial_delay"`
	MaxDelay     string  `yaml:"max_delay"`
	Multiplier   float64 `yaml:"multiplier"`
}

type fileWire struct {
	Profiles map[string]profileWire `yaml:"profiles"`
}

// Profiles maps profile names to validated retry configurations.
type Profiles map[string]retry.Config

// Load reads and parses a profile file.
func Load(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read retry profiles: %w", err)
	}
	return Parse(data)
}

// Parse parses profile YAML, validating every profile.
func Parse(data []byte) (Profiles, error) {
	var wire fileWire
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse retry profiles: %w", err)
	}

	profiles := make(Profiles, len(wire.Profiles))
	for name, pw := range wire.Profiles {
		cfg, err := toConfig(pw)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = cfg
	}
	return profiles, nil
}

// Get returns the named profile. The name "default" falls back to
// retry.DefaultConfig when the file does not override it.
func (p Profiles) Get(name string) (retry.Config, error) {
	if cfg, ok := p[name]; ok {
		return cfg, nil
	}
	if name == "default" {
		return retry.DefaultConfig(), nil
	}
	return retry.Config{}, fmt.Errorf("retry profile %q not found", name)
}

func toConfig(pw profileWire) (retry.Config, error) {
	initial, err := parseDelay(pw.InitialDelay)
	if err != nil {
		return retry.Config{}, fmt.Errorf("initial_delay: %w", err)
	}
	max, err := parseDelay(pw.MaxDelay)
	if err != nil {
		return retry.Config{}, fmt.Errorf("max_delay: %w", err)
	}

	cfg := retry.Config{
		MaxAttempts:  pw.MaxAttempts,
		InitialDelay: initial,
		MaxDelay:     max,
		Multiplier:   pw.Multiplier,
	}
	if err := cfg.Validate(); err != nil {
		return retry.Config{}, err
	}
	return cfg, nil
}

func parseDelay(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
