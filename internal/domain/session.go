package domain

import (
	"encoding/json"
	"time"
)

// ConversationTurn is one entry in a session's conversation transcript.
type ConversationTurn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// AppliedMarks records, per mutating step, the cycle in which it last ran.
// A step re-invoked within the same cycle must not repeat its side effect;
// zero means the step has never run.
type AppliedMarks struct {
	IntentCycle  int `json:"intent_cycle,omitempty"`
	ClarifyCycle int `json:"clarify_cycle,omitempty"`
	PlanCycle    int `json:"plan_cycle,omitempty"`
	CommitCycle  int `json:"commit_cycle,omitempty"`
}

// PlanSession is the single mutable record threaded through every turn of a
// planning session. It is owned exclusively by its session; orchestration
// steps for one session never run concurrently.
type PlanSession struct {
	ID    string `json:"id"`
	Phase Phase  `json:"phase"`

	Conversation []ConversationTurn `json:"conversation,omitempty"`
	UserIntent   string             `json:"user_intent,omitempty"`

	CalendarContext string `json:"calendar_context,omitempty"`
	TodoContext     string `json:"todo_context,omitempty"`

	Confidence  float64 `json:"confidence"`
	Analysis    string  `json:"analysis,omitempty"`
	MissingInfo string  `json:"missing_info,omitempty"`

	Schedule         []TimeBlock      `json:"schedule,omitempty"`
	ScheduleMetadata ScheduleMetadata `json:"schedule_metadata,omitempty"`

	SuggestedEvents  []EventCandidate `json:"suggested_events,omitempty"`
	ApprovedEventIDs []string         `json:"approved_event_ids,omitempty"`

	CycleCount         int          `json:"cycle_count"`
	ClarificationCount int          `json:"clarification_count"`
	Applied            AppliedMarks `json:"applied"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlanSession returns an empty session in the initial phase.
func NewPlanSession(id string, now time.Time) *PlanSession {
	return &PlanSession{
		ID:        id,
		Phase:     PhaseGathering,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeginCycle marks the start of one pass through an orchestration entry
// point. All replay guards compare against the value this increments.
func (s *PlanSession) BeginCycle() {
	s.CycleCount++
}

// Append adds a turn to the conversation transcript.
func (s *PlanSession) Append(role TurnRole, content string) {
	s.Conversation = append(s.Conversation, ConversationTurn{Role: role, Content: content})
}

// Clone returns a deep copy of the session. Orchestration steps run against
// a clone so that a failed turn never leaves half-applied state behind.
func (s *PlanSession) Clone() (*PlanSession, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out PlanSession
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
