package todoist

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// priorityGlyphs maps backend priority (4 = highest) to the display glyph.
// The lowest priority (1 / P4) is omitted from task lines.
var priorityGlyphs = map[int]string{
	4: "🔴 P1",
	3: "🟡 P2",
	2: "🔵 P3",
	1: "⚪ P4",
}

// Provider fetches tasks and formats them into the bounded text summary
// consumed by the planning prompts. Fetch failures are contained here:
// ContextSummary returns a human-readable error string instead of an error.
type Provider struct {
	client Client
	cfg    Config
	now    func() time.Time
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

// ContextSummary returns the two-section task summary: urgent tasks (due
// today or overdue) and backlog tasks (future or no due date). A section is
// omitted when empty. Each entry carries a priority glyph, labels, a
// truncated description preview, and a due-status annotation.
func (p *Provider) ContextSummary(ctx context.Context) string {
	tasks, err := p.client.ListTasks(ctx)
	if err != nil {
		return fmt.Sprintf("Error fetching tasks: %v", err)
	}
	if len(tasks) == 0 {
		return "No tasks found."
	}

	today := dateOnly(p.now())
	var urgent, backlog []string

	for _, task := range tasks {
		line, dueToday := p.formatTaskLine(task, today)
		if dueToday {
			urgent = append(urgent, line)
		} else {
			backlog = append(backlog, line)
		}
	}

	var sections []string
	if len(urgent) > 0 {
		sections = append(sections, "**Urgent Tasks (Due Today or Overdue):**")
		sections = append(sections, urgent...)
	}
	if len(backlog) > 0 {
		if len(sections) > 0 {
			sections = append(sections, "")
		}
		sections = append(sections, "**Backlog Tasks (No Due Date or Future):**")
		sections = append(sections, backlog...)
	}
	return strings.Join(sections, "\n")
}

// formatTaskLine renders one task entry and reports whether it belongs in
// the urgent bucket. Tasks without a due date always go to the backlog.
func (p *Provider) formatTaskLine(task Task, today time.Time) (line string, urgent bool) {
	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(task.Content)

	if glyph, ok := priorityGlyphs[task.Priority]; ok && task.Priority > 1 {
		fmt.Fprintf(&b, " [%s]", glyph)
	}

	if len(task.Labels) > 0 {
		fmt.Fprintf(&b, " #%s", strings.Join(task.Labels, ", #"))
	}

	if task.Description != "" {
		fmt.Fprintf(&b, " | %s", truncate(task.Description, p.cfg.DescriptionMaxLen))
	}

	if task.Due == nil || task.Due.Date == "" {
		b.WriteString(" [No due date]")
		return b.String(), false
	}

	due, err := time.Parse("2006-01-02", task.Due.Date)
	if err != nil {
		fmt.Fprintf(&b, " [Due: %s]", task.Due.Date)
		return b.String(), false
	}

	daysUntil := int(due.Sub(today).Hours() / 24)
	switch {
	case daysUntil < 0:
		fmt.Fprintf(&b, " [⚠️ OVERDUE by %d days]", -daysUntil)
	case daysUntil == 0:
		b.WriteString(" [📅 Due TODAY]")
	default:
		fmt.Fprintf(&b, " [Due: %s]", task.Due.Date)
	}

	return b.String(), daysUntil <= 0
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

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
