package todoist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	tasks []Task
	err   error
}

func (s *stubClient) ListTasks(ctx context.Context) ([]Task, error) {
	return s.tasks, s.err
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func TestContextSummary_UrgentAndBacklogBuckets(t *testing.T) {
	client := &stubClient{tasks: []Task{
		{Content: "File taxes", Priority: 4, Due: &Due{Date: "2026-03-12"}},
		{Content: "Review PR", Priority: 3, Due: &Due{Date: "2026-03-14"}},
		{Content: "Read book", Priority: 1, Due: &Due{Date: "2026-03-20"}},
		{Content: "Tidy desk", Priority: 1},
	}}

	p := NewProvider(client, DefaultConfig()).WithClock(fixedClock)
	summary := p.ContextSummary(context.Background())

	assert.Contains(t, summary, "**Urgent Tasks (Due Today or Overdue):**")
	assert.Contains(t, summary, "**Backlog Tasks (No Due Date or Future):**")

	assert.Contains(t, summary, "[⚠️ OVERDUE by 2 days]")
	assert.Contains(t, summary, "[📅 Due TODAY]")
	assert.Contains(t, summary, "[Due: 2026-03-20]")
	assert.Contains(t, summary, "[No due date]")

	// Urgent section lists the overdue and due-today tasks; backlog the rest.
	urgentPart := summary[:strings.Index(summary, "**Backlog")]
	assert.Contains(t, urgentPart, "File taxes")
	assert.Contains(t, urgentPart, "Review PR")
	assert.NotContains(t, urgentPart, "Read book")
}

func TestContextSummary_PriorityGlyphs(t *testing.T) {
	client := &stubClient{tasks: []Task{
		{Content: "Critical", Priority: 4},
		{Content: "High", Priority: 3},
		{Content: "Medium", Priority: 2},
		{Content: "Low", Priority: 1},
	}}

	p := NewProvider(client, DefaultConfig()).WithClock(fixedClock)
	summary := p.ContextSummary(context.Background())

	assert.Contains(t, summary, "Critical [🔴 P1]")
	assert.Contains(t, summary, "High [🟡 P2]")
	assert.Contains(t, summary, "Medium [🔵 P3]")
	// Lowest priority carries no glyph.
	assert.NotContains(t, summary, "Low [")
}

func TestContextSummary_LabelsAndDescription(t *testing.T) {
	client := &stubClient{tasks: []Task{
		{
			Content:     "Write report",
			Priority:    2,
			Labels:      []string{"work", "writing"},
			Description: "Quarterly numbers plus a narrative summary for the board",
		},
	}}

	p := NewProvider(client, DefaultConfig()).WithClock(fixedClock)
	summary := p.ContextSummary(context.Background())

	assert.Contains(t, summary, "#work, #writing")
	assert.Contains(t, summary, "| Quarterly numbers")
}

func TestContextSummary_UnparseableDueGoesToBacklog(t *testing.T) {
	client := &stubClient{tasks: []Task{
		{Content: "Odd task", Priority: 1, Due: &Due{Date: "next tuesday"}},
	}}

	p := NewProvider(client, DefaultConfig()).WithClock(fixedClock)
	summary := p.ContextSummary(context.Background())

	assert.NotContains(t, summary, "Urgent Tasks")
	assert.Contains(t, summary, "[Due: next tuesday]")
}

func TestContextSummary_FetchErrorContained(t *testing.T) {
	client := &stubClient{err: errors.New("401 unauthorized")}

	p := NewProvider(client, DefaultConfig()).WithClock(fixedClock)
	summary := p.ContextSummary(context.Background())

	assert.Equal(t, "Error fetching tasks: 401 unauthorized", summary)
}

func TestContextSummary_NoTasks(t *testing.T) {
	p := NewProvider(&stubClient{}, DefaultConfig()).WithClock(fixedClock)
	assert.Equal(t, "No tasks found.", p.ContextSummary(context.Background()))
}

func TestTruncate_RuneSafe(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	// Cut lands after a multibyte rune; the result must stay valid UTF-8.
	got := truncate("🧾 déclaration d'impôts à finir", 4)
	assert.Equal(t, "🧾 dé...", got)
	assert.True(t, utf8.ValidString(got))
}
