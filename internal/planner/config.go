package planner

import (
	"os"
	"strconv"
)

// Config holds the tuning knobs for the planning state machine.
type Config struct {
	// ConfidenceThreshold gates the analysis branch: at or above it the
	// session proceeds straight to planning.
	ConfidenceThreshold float64

	// MaxClarifications bounds the clarification loop; once exhausted a
	// plan is forced regardless of confidence.
	MaxClarifications int
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.75,
		MaxClarifications:   2,
	}
}

// LoadConfig reads planner configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("TEMPO_MAX_CLARIFICATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxClarifications = n
		}
	}

	return cfg
}
