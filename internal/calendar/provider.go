package calendar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Provider fetches calendar events and formats them into the bounded text
// summary consumed by the planning prompts. It is a pure read adapter for
// context gathering plus the single write path used by the commit step.
//
// All fetch failures are contained here: Summary returns a human-readable
// error string instead of an error, so the orchestrator proceeds with
// degraded context rather than aborting the turn.
type Provider struct {
	client Client
	cfg    Config
	now    func() time.Time

	mu sync.Mutex
	tz *time.Location
}

// NewProvider creates a Provider over the given backend client.
func NewProvider(client Client, cfg Config) *Provider {
	return &Provider{client: client, cfg: cfg, now: time.Now}
}

// WithClock overrides the provider's clock. Used by tests.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// ContextSummary returns the two-section event summary: past events
// (momentum) and future events (constraints). A section is omitted when
// empty. Each entry carries the extracted category tag, location, truncated
// description preview, and a duration indicator.
func (p *Provider) ContextSummary(ctx context.Context) string {
	now := p.now()
	timeMin := now.AddDate(0, 0, -p.cfg.LookbackDays)
	timeMax := now.AddDate(0, 0, p.cfg.LookaheadDays)

	events, err := p.client.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return fmt.Sprintf("Error fetching calendar events: %v", err)
	}
	if len(events) == 0 {
		return "No calendar events found."
	}

	var past, future []string
	for _, ev := range events {
		line := formatEventLine(ev, p.cfg.DescriptionMaxLen)
		if ev.Start.Before(now) {
			past = append(past, line)
		} else {
			future = append(future, line)
		}
	}

	var sections []string
	if len(past) > 0 {
		sections = append(sections,
			fmt.Sprintf("**Past Events (Momentum - Last %d days):**", p.cfg.LookbackDays))
		sections = append(sections, past...)
	}
	if len(future) > 0 {
		if len(sections) > 0 {
			sections = append(sections, "")
		}
		sections = append(sections,
			fmt.Sprintf("**Future Events (Constraints - Next %d days):**", p.cfg.LookaheadDays))
		sections = append(sections, future...)
	}
	return strings.Join(sections, "\n")
}

// Insert writes one event candidate's time span to the calendar. The
// calendar-local times are interpreted in the backend's reported timezone
// before insertion.
func (p *Provider) Insert(ctx context.Context, title, startLocal, endLocal, description string) error {
	loc, err := p.timezone(ctx)
	if err != nil {
		return fmt.Errorf("resolving calendar timezone: %w", err)
	}

	start, err := time.ParseInLocation(domain.BlockTimeLayout, startLocal, loc)
	if err != nil {
		return fmt.Errorf("parsing start time %q: %w", startLocal, err)
	}
	end, err := time.ParseInLocation(domain.BlockTimeLayout, endLocal, loc)
	if err != nil {
		return fmt.Errorf("parsing end time %q: %w", endLocal, err)
	}

	_, err = p.client.InsertEvent(ctx, EventInsert{
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		TimeZone:    loc.String(),
	})
	return err
}

// timezone loads and caches the backend's timezone. Failures are not cached
// so a transient backend error is retried on the next write.
func (p *Provider) timezone(ctx context.Context) (*time.Location, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tz != nil {
		return p.tz, nil
	}

	name, err := p.client.PrimaryTimezone(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	p.tz = loc
	return loc, nil
}

func formatEventLine(ev Event, descMax int) string {
	category, clean := ParseTitle(ev.Title)

	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(ev.Start.Format(domain.BlockTimeLayout))
	b.WriteString(": ")
	if category != "" {
		fmt.Fprintf(&b, "[%s] ", category)
	}
	b.WriteString(clean)

	if ev.Location != "" {
		fmt.Fprintf(&b, " @ %s", ev.Location)
	}
	if ev.Description != "" {
		fmt.Fprintf(&b, " | %s", truncate(ev.Description, descMax))
	}
	if !ev.AllDay && ev.End.After(ev.Start) {
		fmt.Fprintf(&b, " (%s)", formatSpan(ev.End.Sub(ev.Start)))
	}
	return b.String()
}

// truncate caps s at max runes. Cutting on a rune boundary keeps multibyte
// descriptions (accents, emoji) valid UTF-8 in the summary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func formatSpan(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
