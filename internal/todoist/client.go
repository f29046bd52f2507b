package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Due is a task due date. Date is YYYY-MM-DD.
type Due struct {
	Date string `json:"date"`
}

// Task is a task as returned by the backend. Priority is 1 (lowest) to
// 4 (highest), matching the Todoist REST convention where 4 renders as P1.
type Task struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"`
	Labels      []string `json:"labels"`
	Due         *Due     `json:"due"`
}

// Client provides read access to the task backend.
type Client interface {
	ListTasks(ctx context.Context) ([]Task, error)
}

// httpClient implements Client against the Todoist REST v2 API.
type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewHTTPClient creates a Client for the configured task endpoint.
func NewHTTPClient(cfg Config) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (c *httpClient) ListTasks(ctx context.Context) ([]Task, error) {
	if c.cfg.Token == "" {
		return nil, fmt.Errorf("TEMPO_TODOIST_TOKEN not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/tasks", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var tasks []Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	return tasks, nil
}
