package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnalysis_Parsed(t *testing.T) {
	raw := `{"confidence": 0.85, "analysis": "clear priorities, calendar is open", "missing_info": ""}`

	got := ExtractAnalysis(raw)
	assert.True(t, got.Parsed)
	assert.InDelta(t, 0.85, got.Confidence, 0.001)
	assert.Equal(t, "clear priorities, calendar is open", got.Analysis)
	assert.Empty(t, got.MissingInfo)
}

func TestExtractAnalysis_FallbackOnGarbage(t *testing.T) {
	raw := "I'm not sure how to structure this, let me think out loud instead..."

	got := ExtractAnalysis(raw)
	assert.False(t, got.Parsed)
	assert.InDelta(t, 0.5, got.Confidence, 0.001)
	assert.Equal(t, raw, got.Analysis)
	assert.Equal(t, fallbackMissingInfo, got.MissingInfo)
}

func TestExtractAnalysis_FallbackOnOutOfRangeConfidence(t *testing.T) {
	raw := `{"confidence": 3.0, "analysis": "overconfident", "missing_info": ""}`

	got := ExtractAnalysis(raw)
	assert.False(t, got.Parsed)
	assert.InDelta(t, 0.5, got.Confidence, 0.001)
}

func TestExtractAnalysis_FallbackIsDeterministic(t *testing.T) {
	raw := "unstructured response"
	assert.Equal(t, ExtractAnalysis(raw), ExtractAnalysis(raw))
}

func TestExtractPlan_Parsed(t *testing.T) {
	raw := "```json\n" + `{
		"schedule": [
			{"start_time": "2026-03-16 09:00", "end_time": "2026-03-16 10:30", "title": "Deep work", "priority": "P1", "type": "work"},
			{"start_time": "2026-03-16 10:30", "end_time": "2026-03-16 10:45", "title": "Break", "type": "break"}
		],
		"metadata": {"total_blocks": 2, "work_minutes": 90, "break_minutes": 15, "summary": "Front-loaded focus."}
	}` + "\n```"

	got := ExtractPlan(raw)
	require.True(t, got.Parsed)
	require.Len(t, got.Schedule, 2)
	assert.Equal(t, "Deep work", got.Schedule[0].Title)
	assert.Equal(t, 90, got.Metadata.WorkMinutes)
	assert.Equal(t, "Front-loaded focus.", got.Metadata.Summary)
}

func TestExtractPlan_EmptyOnGarbage(t *testing.T) {
	got := ExtractPlan("no schedule today, sorry")
	assert.False(t, got.Parsed)
	assert.Empty(t, got.Schedule)
	assert.Zero(t, got.Metadata)
}

func TestExtractPlan_KeepsBlocksWithMissingTimes(t *testing.T) {
	raw := `{
		"schedule": [
			{"start_time": "2026-03-16 09:00", "end_time": "2026-03-16 10:30", "title": "Deep work"},
			{"start_time": "2026-03-16 10:30", "end_time": "", "title": "Floating block"}
		],
		"metadata": {"total_blocks": 2}
	}`

	got := ExtractPlan(raw)
	require.True(t, got.Parsed)
	require.Len(t, got.Schedule, 2)
	assert.Equal(t, "Floating block", got.Schedule[1].Title)

	// A degenerate block never costs the rest of the schedule; derivation
	// recovers it with the default duration.
	events := ConvertScheduleToEvents(got.Schedule)
	require.Len(t, events, 2)
	assert.Equal(t, 90, events[0].DurationMinutes)
	assert.Equal(t, defaultBlockMinutes, events[1].DurationMinutes)
}
