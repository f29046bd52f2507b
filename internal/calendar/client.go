package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Event is a calendar event as returned by the backend.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// EventInsert holds the fields for a new calendar event write. Times are
// already localized to the backend's reported timezone.
type EventInsert struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// Client provides read/write access to the calendar backend.
type Client interface {
	// ListEvents returns events ordered by start time within [timeMin, timeMax].
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error)

	// InsertEvent writes a new event and returns its backend identifier.
	InsertEvent(ctx context.Context, ins EventInsert) (string, error)

	// PrimaryTimezone returns the IANA timezone name of the calendar.
	PrimaryTimezone(ctx context.Context) (string, error)
}

// httpClient implements Client against the Google Calendar v3 REST API.
type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewHTTPClient creates a Client for the configured calendar endpoint.
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

// apiDateTime is the start/end shape used by the events API. Exactly one of
// DateTime (timed event) or Date (all-day event) is set.
type apiDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type apiEvent struct {
	ID          string      `json:"id,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	Start       apiDateTime `json:"start"`
	End         apiDateTime `json:"end"`
}

type apiEventList struct {
	Items []apiEvent `json:"items"`
}

type apiCalendar struct {
	TimeZone string `json:"timeZone"`
}

func (c *httpClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin.UTC().Format(time.RFC3339))
	q.Set("timeMax", timeMax.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", "100")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.cfg.Endpoint, url.PathEscape(c.cfg.CalendarID), q.Encode())

	var list apiEventList
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		ev, err := item.toEvent()
		if err != nil {
			return nil, fmt.Errorf("parsing event %q: %w", item.Summary, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *httpClient) InsertEvent(ctx context.Context, ins EventInsert) (string, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events",
		c.cfg.Endpoint, url.PathEscape(c.cfg.CalendarID))

	body := apiEvent{
		Summary:     ins.Title,
		Description: ins.Description,
		Start:       apiDateTime{DateTime: ins.Start.Format(time.RFC3339), TimeZone: ins.TimeZone},
		End:         apiDateTime{DateTime: ins.End.Format(time.RFC3339), TimeZone: ins.TimeZone},
	}

	var created apiEvent
	if err := c.do(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}
	return created.ID, nil
}

func (c *httpClient) PrimaryTimezone(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s",
		c.cfg.Endpoint, url.PathEscape(c.cfg.CalendarID))

	var cal apiCalendar
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &cal); err != nil {
		return "", fmt.Errorf("fetching calendar timezone: %w", err)
	}
	if cal.TimeZone == "" {
		return "UTC", nil
	}
	return cal.TimeZone, nil
}

func (c *httpClient) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.cfg.ResolveToken()
	if err != nil {
		return fmt.Errorf("resolving credential: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("calendar backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (e apiEvent) toEvent() (Event, error) {
	ev := Event{
		ID:          e.ID,
		Title:       e.Summary,
		Description: e.Description,
		Location:    e.Location,
	}

	start, allDay, err := e.Start.parse()
	if err != nil {
		return Event{}, fmt.Errorf("start: %w", err)
	}
	end, _, err := e.End.parse()
	if err != nil {
		return Event{}, fmt.Errorf("end: %w", err)
	}

	ev.Start = start
	ev.End = end
	ev.AllDay = allDay
	return ev, nil
}

func (d apiDateTime) parse() (time.Time, bool, error) {
	if d.DateTime != "" {
		t, err := time.Parse(time.RFC3339, d.DateTime)
		return t, false, err
	}
	if d.Date != "" {
		t, err := time.Parse("2006-01-02", d.Date)
		return t, true, err
	}
	return time.Time{}, false, fmt.Errorf("no dateTime or date field")
}
