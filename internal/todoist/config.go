package todoist

import (
	"os"
	"strconv"
	"strings"
)

// Config holds configuration for the task backend and its context provider.
type Config struct {
	Endpoint          string
	Token             string
	TimeoutMs         int
	DescriptionMaxLen int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:          "https://api.todoist.com/rest/v2",
		TimeoutMs:         10000,
		DescriptionMaxLen: 80,
	}
}

// LoadConfig reads task backend configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_TODOIST_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("TEMPO_TODOIST_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("TEMPO_TODOIST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TEMPO_TASK_DESC_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DescriptionMaxLen = n
		}
	}

	return cfg
}
