package planner

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/llm"
)

// fallbackMissingInfo is the sentinel recorded when an analysis response
// could not be parsed at all.
const fallbackMissingInfo = "Unable to analyze request completely. Please provide more details about what you want to accomplish."

// AnalysisResult is the parsed output of the analysis step. Parsed is false
// when the model output could not be interpreted and defaults were used.
type AnalysisResult struct {
	Confidence  float64
	Analysis    string
	MissingInfo string
	Parsed      bool
}

// analysisPayload matches the JSON contract in analysisSystemPrompt.
type analysisPayload struct {
	Confidence  float64 `json:"confidence"`
	Analysis    string  `json:"analysis"`
	MissingInfo string  `json:"missing_info"`
}

// ExtractAnalysis parses an analysis response. It never fails: when the
// payload cannot be extracted it returns the neutral fallback (confidence
// 0.5, the raw text as analysis, a generic missing-info sentinel) so the
// state machine can continue into the clarification branch.
func ExtractAnalysis(raw string) AnalysisResult {
	payload, err := llm.ExtractJSON(raw, func(p analysisPayload) error {
		if p.Confidence < 0 || p.Confidence > 1 {
			return fmt.Errorf("confidence %v out of range [0, 1]", p.Confidence)
		}
		return nil
	})
	if err != nil {
		return AnalysisResult{
			Confidence:  0.5,
			Analysis:    raw,
			MissingInfo: fallbackMissingInfo,
			Parsed:      false,
		}
	}
	return AnalysisResult{
		Confidence:  payload.Confidence,
		Analysis:    payload.Analysis,
		MissingInfo: payload.MissingInfo,
		Parsed:      true,
	}
}

// PlanResult is the parsed output of the planning step. Parsed is false when
// the model output could not be interpreted; Schedule is empty in that case.
type PlanResult struct {
	Schedule []domain.TimeBlock
	Metadata domain.ScheduleMetadata
	Parsed   bool
}

// planPayload matches the JSON contract in planSystemPrompt.
type planPayload struct {
	Schedule []domain.TimeBlock      `json:"schedule"`
	Metadata domain.ScheduleMetadata `json:"metadata"`
}

// ExtractPlan parses a planning response. It never fails: an unparseable
// response yields an empty schedule and zero metadata, which downstream
// steps surface to the user as "no blocks planned". Blocks with missing or
// malformed time fields are kept; event derivation recovers them with the
// default duration.
func ExtractPlan(raw string) PlanResult {
	payload, err := llm.ExtractJSON[planPayload](raw, nil)
	if err != nil {
		return PlanResult{Parsed: false}
	}
	return PlanResult{
		Schedule: payload.Schedule,
		Metadata: payload.Metadata,
		Parsed:   true,
	}
}
