package domain

// Phase is the planning state machine's current state for a session.
type Phase string

const (
	PhaseGathering             Phase = "gathering"
	PhaseAnalyzing             Phase = "analyzing"
	PhaseAwaitingClarification Phase = "awaiting_clarification"
	PhasePlanning              Phase = "planning"
	PhaseAwaitingApproval      Phase = "awaiting_approval"
	PhaseCommitting            Phase = "committing"
	PhaseDone                  Phase = "done"
)

// TurnRole tags a conversation turn as user- or assistant-authored.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Priority is the four-level schedule priority, P1 highest to P4 lowest.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"P1": true, "P2": true, "P3": true, "P4": true,
}

// IsValid reports whether p is one of the four accepted priorities.
func (p Priority) IsValid() bool { return ValidPriorities[string(p)] }

// BlockType classifies a scheduled time block. Breaks are never converted
// into calendar event candidates.
type BlockType string

const (
	BlockWork     BlockType = "work"
	BlockMeeting  BlockType = "meeting"
	BlockBreak    BlockType = "break"
	BlockAdmin    BlockType = "admin"
	BlockPersonal BlockType = "personal"
)

// ValidBlockTypes is the canonical set of accepted block type strings.
var ValidBlockTypes = map[string]bool{
	"work": true, "meeting": true, "break": true,
	"admin": true, "personal": true,
}

// IsValid reports whether t is one of the accepted block types.
func (t BlockType) IsValid() bool { return ValidBlockTypes[string(t)] }

// EnergyLevel is the three-tier spoons tag for a block.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// IsValid reports whether e is one of the three energy tiers.
func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	}
	return false
}

// CognitiveLoad is the three-tier cognitive demand tag for a block.
type CognitiveLoad string

const (
	CognitiveHigh   CognitiveLoad = "high"
	CognitiveMedium CognitiveLoad = "medium"
	CognitiveLow    CognitiveLoad = "low"
)

// IsValid reports whether c is one of the three cognitive load tiers.
func (c CognitiveLoad) IsValid() bool {
	switch c {
	case CognitiveHigh, CognitiveMedium, CognitiveLow:
		return true
	}
	return false
}
