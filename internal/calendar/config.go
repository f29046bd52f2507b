package calendar

import (
	"os"
	"strconv"
	"strings"
)

// Config holds configuration for the calendar backend and its context provider.
type Config struct {
	Endpoint   string
	CalendarID string
	Token      string
	TokenFile  string
	TimeoutMs  int

	LookbackDays      int
	LookaheadDays     int
	DescriptionMaxLen int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:          "https://www.googleapis.com/calendar/v3",
		CalendarID:        "primary",
		TimeoutMs:         10000,
		LookbackDays:      3,
		LookaheadDays:     7,
		DescriptionMaxLen: 100,
	}
}

// LoadConfig reads calendar configuration from environment variables,
// falling back to defaults for any unset values. The access token may be
// provided inline or via a credential file path.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_CALENDAR_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("TEMPO_CALENDAR_ID"); v != "" {
		cfg.CalendarID = v
	}
	if v := os.Getenv("TEMPO_CALENDAR_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("TEMPO_CALENDAR_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv("TEMPO_CALENDAR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TEMPO_LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LookbackDays = n
		}
	}
	if v := os.Getenv("TEMPO_LOOKAHEAD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LookaheadDays = n
		}
	}
	if v := os.Getenv("TEMPO_EVENT_DESC_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DescriptionMaxLen = n
		}
	}

	return cfg
}

// ResolveToken returns the access token, reading the credential file when no
// inline token is configured.
func (c Config) ResolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.TokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
