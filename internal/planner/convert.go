package planner

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

const defaultBlockMinutes = 60

// ConvertScheduleToEvents derives calendar-insertable candidates from a
// schedule. Break blocks are excluded but still consume an index, so
// candidate IDs can have gaps; this keeps IDs stable against the source
// schedule across re-derivations. The conversion is deterministic: no clock
// reads, no randomness.
func ConvertScheduleToEvents(schedule []domain.TimeBlock) []domain.EventCandidate {
	var events []domain.EventCandidate
	for idx, block := range schedule {
		if domain.BlockType(block.Type) == domain.BlockBreak {
			continue
		}
		events = append(events, domain.EventCandidate{
			ID:              fmt.Sprintf("evt_%d", idx+1),
			Title:           orDefault(block.Title, "Untitled Task"),
			StartTime:       block.StartTime,
			EndTime:         block.EndTime,
			DurationMinutes: blockDurationMinutes(block),
			Priority:        normalizePriority(block.Priority),
			Type:            normalizeBlockType(block.Type),
			EnergyLevel:     normalizeEnergy(block.EnergyLevel),
			CognitiveLoad:   normalizeCognitive(block.CognitiveLoad),
			Rationale:       orDefault(block.Rationale, "From your optimized schedule"),
			Tags:            block.Tags,
			SourceTask:      "Planned schedule",
		})
	}
	return events
}

// The model is prompted to emit canonical enum strings but is not trusted
// to; anything outside the canonical sets collapses to the neutral default.

func normalizePriority(p string) string {
	if domain.Priority(p).IsValid() {
		return p
	}
	return string(domain.PriorityP4)
}

func normalizeBlockType(t string) string {
	if domain.BlockType(t).IsValid() {
		return t
	}
	return string(domain.BlockWork)
}

func normalizeEnergy(e string) string {
	if domain.EnergyLevel(e).IsValid() {
		return e
	}
	return string(domain.EnergyMedium)
}

func normalizeCognitive(c string) string {
	if domain.CognitiveLoad(c).IsValid() {
		return c
	}
	return string(domain.CognitiveMedium)
}

// blockDurationMinutes computes the block span from its timestamps, falling
// back to a default when either end fails to parse.
func blockDurationMinutes(block domain.TimeBlock) int {
	start, err := time.Parse(domain.BlockTimeLayout, block.StartTime)
	if err != nil {
		return defaultBlockMinutes
	}
	end, err := time.Parse(domain.BlockTimeLayout, block.EndTime)
	if err != nil {
		return defaultBlockMinutes
	}
	minutes := int(end.Sub(start).Minutes())
	if minutes <= 0 {
		return defaultBlockMinutes
	}
	return minutes
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
