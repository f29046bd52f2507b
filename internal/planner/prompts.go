package planner

import (
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// analysisSystemPrompt instructs the model to score readiness to plan.
const analysisSystemPrompt = `You are an executive strategist specializing in neurodivergent-friendly daily planning.
Analyze the user's intent against their calendar and task context, with attention to energy
management (spoons), task priorities, and cognitive load.

Analyze with these priorities:
1. Energy/spoons: does the user have energy constraints? Are high-energy tasks placed appropriately?
2. Task priorities: are priorities (P1-P4) clear? Should urgent tasks be scheduled first?
3. Calendar conflicts: does the request conflict with hard calendar constraints?
4. Specificity: are there enough details to create a concrete, actionable plan?
5. Cognitive load: is the plan realistic for someone managing executive function challenges?

If the user already provided a priority level for a vague task, be confident (0.8+) and proceed
to planning; ask about task DETAILS (what, when, duration), not priority confirmation.
Review the conversation history and never re-ask a question that was already answered.

You must output ONLY a JSON object with these exact fields:
- confidence: number between 0.0 and 1.0
- analysis: your reasoning about energy, priorities, constraints, and feasibility
- missing_info: the SPECIFIC details needed (duration, preferred time, energy level,
  dependencies), or an empty string if confident

Use strict JSON numeric literals (0.85, never .85). No markdown, no explanation.`

// clarifySystemPrompt instructs the model to ask one targeted question.
// The whole response is used verbatim as the question text.
const clarifySystemPrompt = `You are helping a neurodivergent user plan their day. Based on the missing information,
ask ONE concise, specific question that will help create an actionable plan.

Good questions target ACTIONABLE details: preferred time window, estimated duration,
prep or buffer needs, current energy level. Bad questions are vague ("what kind of plan
do you need?") or re-confirm priorities the user already stated.

Review the conversation history and do not repeat a question that was already asked or
answered. Respond with the question text only.`

// planSystemPrompt instructs the model to emit the structured schedule.
const planSystemPrompt = `You are an executive planner specializing in neurodivergent-friendly scheduling.
Create a realistic, achievable schedule that prioritizes spoon management and cognitive load:
- Schedule high-energy tasks in the user's peak windows; include breaks and buffer time.
- Order by priority: P1 first during peak energy, then P2, P3; P4 only if time permits.
- Calendar events are immovable; work around them.
- Group similar tasks to limit context switching; put decision-heavy work early.
- Better to under-schedule than over-schedule.

You must output ONLY a JSON object with these exact fields:
- schedule: array of time blocks, each with:
  - start_time: "YYYY-MM-DD HH:MM"
  - end_time: "YYYY-MM-DD HH:MM" (strictly after start_time)
  - title: short block title
  - description: optional detail
  - priority: "P1" | "P2" | "P3" | "P4"
  - type: "work" | "meeting" | "break" | "admin" | "personal"
  - energy_level: "high" | "medium" | "low"
  - cognitive_load: "high" | "medium" | "low"
  - rationale: one sentence on why this block is placed here
  - tags: optional array of strings
- metadata: object with total_blocks (number), work_minutes (number),
  break_minutes (number), and summary (one-paragraph narrative)

No markdown, no explanation, only the JSON object.`

// buildAnalysisUserPrompt renders the analysis prompt from session state.
func buildAnalysisUserPrompt(s *domain.PlanSession) string {
	var b strings.Builder
	b.WriteString("**User Intent:**\n")
	b.WriteString(s.UserIntent)
	b.WriteString("\n\n**Calendar Context (Past/Future Events):**\n")
	b.WriteString(s.CalendarContext)
	b.WriteString("\n\n**Todo Context (Urgent/Backlog Tasks):**\n")
	b.WriteString(s.TodoContext)
	b.WriteString("\n\n**Conversation History:**\n")
	b.WriteString(conversationHistory(s))
	return b.String()
}

// buildClarifyUserPrompt renders the clarification prompt from session state.
func buildClarifyUserPrompt(s *domain.PlanSession) string {
	var b strings.Builder
	b.WriteString("**Missing Information:**\n")
	b.WriteString(s.MissingInfo)
	b.WriteString("\n\n**User's Original Intent:**\n")
	b.WriteString(s.UserIntent)
	b.WriteString("\n\n**Conversation History:**\n")
	b.WriteString(conversationHistory(s))
	return b.String()
}

// buildPlanUserPrompt renders the planning prompt from session state.
func buildPlanUserPrompt(s *domain.PlanSession) string {
	var b strings.Builder
	b.WriteString("**User Intent:**\n")
	b.WriteString(s.UserIntent)
	b.WriteString("\n\n**Calendar Context:**\n")
	b.WriteString(s.CalendarContext)
	b.WriteString("\n\n**Todo Context:**\n")
	b.WriteString(s.TodoContext)
	b.WriteString("\n\n**Strategic Analysis:**\n")
	b.WriteString(s.Analysis)
	b.WriteString("\n\n**Conversation History:**\n")
	b.WriteString(conversationHistory(s))
	return b.String()
}

func conversationHistory(s *domain.PlanSession) string {
	if len(s.Conversation) == 0 {
		return "(No previous conversation)"
	}
	lines := make([]string, 0, len(s.Conversation))
	for _, turn := range s.Conversation {
		role := "User"
		if turn.Role == domain.RoleAssistant {
			role = "Assistant"
		}
		lines = append(lines, role+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
