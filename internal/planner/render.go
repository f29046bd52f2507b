package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// RenderSchedule formats a generated schedule as the assistant message shown
// to the user for approval. The rendering is a pure function of the schedule
// and metadata, so replaying the planning step reproduces the same text.
func RenderSchedule(schedule []domain.TimeBlock, meta domain.ScheduleMetadata) string {
	if len(schedule) == 0 {
		return "I wasn't able to produce a schedule from that. Could you rephrase what you'd like to plan?"
	}

	var b strings.Builder
	b.WriteString("Here's your optimized schedule:\n")

	for _, block := range schedule {
		b.WriteString("\n")
		b.WriteString(formatBlockLine(block))
		if block.Rationale != "" {
			b.WriteString("\n  ")
			b.WriteString(block.Rationale)
		}
	}

	if meta.Summary != "" {
		b.WriteString("\n\n")
		b.WriteString(meta.Summary)
	}
	if meta.TotalBlocks > 0 {
		fmt.Fprintf(&b, "\n\n%d blocks | %s focused work | %s breaks",
			meta.TotalBlocks,
			formatMinutes(meta.WorkMinutes),
			formatMinutes(meta.BreakMinutes))
	}

	b.WriteString("\n\nReview the suggested events and approve the ones you want on your calendar.")
	return b.String()
}

// formatBlockLine renders one schedule entry: clock span, title, and the
// priority/type/energy annotations when present.
func formatBlockLine(block domain.TimeBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s - %s: %s", clockOf(block.StartTime), clockOf(block.EndTime), block.Title)

	var attrs []string
	if block.Priority != "" {
		attrs = append(attrs, block.Priority)
	}
	if block.Type != "" {
		attrs = append(attrs, block.Type)
	}
	if block.EnergyLevel != "" {
		attrs = append(attrs, block.EnergyLevel+" energy")
	}
	if len(attrs) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(attrs, ", "))
	}
	if block.Description != "" {
		fmt.Fprintf(&b, " — %s", block.Description)
	}
	return b.String()
}

// clockOf extracts the HH:MM portion of a block timestamp, returning the raw
// value when it does not parse.
func clockOf(ts string) string {
	t, err := time.Parse(domain.BlockTimeLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
