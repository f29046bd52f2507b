package domain

// BlockTimeLayout is the calendar-local, minute-precision layout used for
// schedule block times both in planner output and in event candidates.
const BlockTimeLayout = "2006-01-02 15:04"

// TimeBlock is one scheduled interval in a generated plan. Field names match
// the JSON contract the planning prompt asks the reasoning model to emit.
type TimeBlock struct {
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Priority      string   `json:"priority,omitempty"`
	Type          string   `json:"type,omitempty"`
	EnergyLevel   string   `json:"energy_level,omitempty"`
	CognitiveLoad string   `json:"cognitive_load,omitempty"`
	Rationale     string   `json:"rationale,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// ScheduleMetadata carries summary statistics and narrative about a schedule.
// The zero value means "no metadata".
type ScheduleMetadata struct {
	TotalBlocks  int    `json:"total_blocks,omitempty"`
	WorkMinutes  int    `json:"work_minutes,omitempty"`
	BreakMinutes int    `json:"break_minutes,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// EventCandidate is a time block transformed into a calendar-insertable
// record. IDs are stable within one derivation pass only.
type EventCandidate struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Priority        string   `json:"priority"`
	Type            string   `json:"type"`
	EnergyLevel     string   `json:"energy_level"`
	CognitiveLoad   string   `json:"cognitive_load"`
	Rationale       string   `json:"rationale"`
	Tags            []string `json:"tags,omitempty"`
	SourceTask      string   `json:"source_task"`
}
