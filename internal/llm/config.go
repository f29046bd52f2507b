package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the reasoning role being invoked. Each role may use a
// different underlying model for cost/latency tradeoffs.
type TaskType string

const (
	TaskAnalysis TaskType = "analysis"
	TaskClarify  TaskType = "clarification"
	TaskPlan     TaskType = "planning"
)

// TaskConfig holds per-role model parameters.
type TaskConfig struct {
	Model       string // overrides the global model if non-empty
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the reasoning subsystem.
type Config struct {
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults for a local
// Ollama endpoint.
func DefaultConfig() Config {
	return Config{
		LogCalls:  false,
		Endpoint:  "http://localhost:11434",
		Model:     "llama3.2",
		TimeoutMs: 60000,
		Tasks: map[TaskType]TaskConfig{
			TaskAnalysis: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 60000},
			TaskClarify:  {Temperature: 0.4, MaxTokens: 256, TimeoutMs: 20000},
			TaskPlan:     {Temperature: 0.3, MaxTokens: 4096, TimeoutMs: 90000},
		},
	}
}

// LoadConfig reads reasoning configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TEMPO_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TEMPO_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TEMPO_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TEMPO_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskModelEnv(&cfg, TaskAnalysis, "TEMPO_ANALYSIS_MODEL")
	applyTaskModelEnv(&cfg, TaskClarify, "TEMPO_CLARIFY_MODEL")
	applyTaskModelEnv(&cfg, TaskPlan, "TEMPO_PLAN_MODEL")

	applyTaskTimeoutEnv(&cfg, TaskAnalysis, "TEMPO_ANALYSIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskClarify, "TEMPO_CLARIFY_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskPlan, "TEMPO_PLAN_TIMEOUT_MS")

	return cfg
}

// TaskModel returns the effective model for a given task role.
func (c Config) TaskModel(task TaskType) string {
	if tc, ok := c.Tasks[task]; ok && tc.Model != "" {
		return tc.Model
	}
	return c.Model
}

// TaskTimeout returns the effective timeout for a given task role.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskModelEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	tc := cfg.Tasks[task]
	tc.Model = v
	cfg.Tasks[task] = tc
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
