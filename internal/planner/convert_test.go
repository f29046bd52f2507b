package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
)

func TestConvertScheduleToEvents_SkipsBreaksWithGappedIDs(t *testing.T) {
	schedule := []domain.TimeBlock{
		testutil.NewTestBlock("Deep work", "2026-03-16 09:00", "2026-03-16 10:30"),
		testutil.NewTestBlock("Coffee", "2026-03-16 10:30", "2026-03-16 10:45", testutil.WithBlockType("break")),
		testutil.NewTestBlock("Email", "2026-03-16 10:45", "2026-03-16 11:15"),
	}

	events := ConvertScheduleToEvents(schedule)
	require.Len(t, events, 2)

	// Break blocks consume an index, so IDs stay aligned with the source
	// schedule and can have gaps.
	assert.Equal(t, "evt_1", events[0].ID)
	assert.Equal(t, "evt_3", events[1].ID)
	assert.Equal(t, "Deep work", events[0].Title)
	assert.Equal(t, "Email", events[1].Title)
}

func TestConvertScheduleToEvents_Durations(t *testing.T) {
	schedule := []domain.TimeBlock{
		testutil.NewTestBlock("Ninety", "2026-03-16 09:00", "2026-03-16 10:30"),
		testutil.NewTestBlock("Unparseable", "9am", "10am"),
		testutil.NewTestBlock("Inverted", "2026-03-16 11:00", "2026-03-16 10:00"),
	}

	events := ConvertScheduleToEvents(schedule)
	require.Len(t, events, 3)
	assert.Equal(t, 90, events[0].DurationMinutes)
	assert.Equal(t, defaultBlockMinutes, events[1].DurationMinutes)
	assert.Equal(t, defaultBlockMinutes, events[2].DurationMinutes)
}

func TestConvertScheduleToEvents_Defaults(t *testing.T) {
	schedule := []domain.TimeBlock{
		{StartTime: "2026-03-16 09:00", EndTime: "2026-03-16 10:00"},
	}

	events := ConvertScheduleToEvents(schedule)
	require.Len(t, events, 1)

	evt := events[0]
	assert.Equal(t, "Untitled Task", evt.Title)
	assert.Equal(t, "P4", evt.Priority)
	assert.Equal(t, "work", evt.Type)
	assert.Equal(t, "medium", evt.EnergyLevel)
	assert.Equal(t, "medium", evt.CognitiveLoad)
	assert.Equal(t, "From your optimized schedule", evt.Rationale)
	assert.Equal(t, "Planned schedule", evt.SourceTask)
}

func TestConvertScheduleToEvents_NormalizesOffEnumValues(t *testing.T) {
	schedule := []domain.TimeBlock{
		{
			StartTime:     "2026-03-16 09:00",
			EndTime:       "2026-03-16 10:00",
			Title:         "Deep work",
			Priority:      "urgent",
			Type:          "focus",
			EnergyLevel:   "extreme",
			CognitiveLoad: "HIGH",
		},
	}

	events := ConvertScheduleToEvents(schedule)
	require.Len(t, events, 1)

	evt := events[0]
	assert.Equal(t, string(domain.PriorityP4), evt.Priority)
	assert.Equal(t, string(domain.BlockWork), evt.Type)
	assert.Equal(t, string(domain.EnergyMedium), evt.EnergyLevel)
	assert.Equal(t, string(domain.CognitiveMedium), evt.CognitiveLoad)
}

func TestConvertScheduleToEvents_Deterministic(t *testing.T) {
	schedule := []domain.TimeBlock{
		testutil.NewTestBlock("A", "2026-03-16 09:00", "2026-03-16 10:00"),
		testutil.NewTestBlock("Lunch", "2026-03-16 12:00", "2026-03-16 13:00", testutil.WithBlockType("break")),
		testutil.NewTestBlock("B", "2026-03-16 13:00", "2026-03-16 14:00"),
	}

	first := ConvertScheduleToEvents(schedule)
	second := ConvertScheduleToEvents(schedule)
	assert.Equal(t, first, second)
}

func TestConvertScheduleToEvents_Empty(t *testing.T) {
	assert.Empty(t, ConvertScheduleToEvents(nil))
	assert.Empty(t, ConvertScheduleToEvents([]domain.TimeBlock{
		testutil.NewTestBlock("Break only", "2026-03-16 09:00", "2026-03-16 09:15", testutil.WithBlockType("break")),
	}))
}
