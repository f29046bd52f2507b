package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tempo/internal/domain"
)

// BlockOption mutates a test time block.
type BlockOption func(*domain.TimeBlock)

func WithBlockType(t string) BlockOption {
	return func(b *domain.TimeBlock) {
		b.Type = t
	}
}

func WithBlockPriority(p string) BlockOption {
	return func(b *domain.TimeBlock) {
		b.Priority = p
	}
}

func WithBlockEnergy(level string) BlockOption {
	return func(b *domain.TimeBlock) {
		b.EnergyLevel = level
	}
}

func WithBlockRationale(r string) BlockOption {
	return func(b *domain.TimeBlock) {
		b.Rationale = r
	}
}

// NewTestBlock builds a schedule block with sensible defaults. Start and end
// use the planner's block time layout.
func NewTestBlock(title, start, end string, opts ...BlockOption) domain.TimeBlock {
	b := domain.TimeBlock{
		StartTime:     start,
		EndTime:       end,
		Title:         title,
		Priority:      "P2",
		Type:          "work",
		EnergyLevel:   "medium",
		CognitiveLoad: "medium",
		Rationale:     "test block",
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// SessionOption mutates a test session.
type SessionOption func(*domain.PlanSession)

func WithPhase(phase domain.Phase) SessionOption {
	return func(s *domain.PlanSession) {
		s.Phase = phase
	}
}

func WithIntent(intent string) SessionOption {
	return func(s *domain.PlanSession) {
		s.UserIntent = intent
	}
}

func WithSuggestedEvents(events ...domain.EventCandidate) SessionOption {
	return func(s *domain.PlanSession) {
		s.SuggestedEvents = events
	}
}

// NewTestSession builds a session with a random ID and a fixed creation time.
func NewTestSession(opts ...SessionOption) *domain.PlanSession {
	s := domain.NewPlanSession(uuid.New().String(), time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	for _, opt := range opts {
		opt(s)
	}
	return s
}
