package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/llm"
)

// Engine drives a planning session through its phases. It mutates the
// session it is handed and returns an error only when a step failed before
// completing; callers that need failure atomicity should run it against a
// session clone and persist only on success.
//
// Engine methods for one session must not run concurrently.
type Engine struct {
	llm      llm.Client
	calendar CalendarGateway
	tasks    TaskGateway
	cfg      Config
	now      func() time.Time
}

// NewEngine wires an Engine over its reasoning and context backends.
func NewEngine(client llm.Client, calendar CalendarGateway, tasks TaskGateway, cfg Config) *Engine {
	return &Engine{
		llm:      client,
		calendar: calendar,
		tasks:    tasks,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the engine's clock. Used by tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Start begins a planning session from the user's initial intent. The
// session must be freshly created (gathering phase).
func (e *Engine) Start(ctx context.Context, s *domain.PlanSession, intent string) error {
	if s.Phase != domain.PhaseGathering {
		return phaseError("start", s.Phase)
	}
	s.UserIntent = strings.TrimSpace(intent)
	s.BeginCycle()
	return e.resume(ctx, s)
}

// Clarify feeds the user's answer to the pending clarification question back
// into the session and re-runs analysis.
func (e *Engine) Clarify(ctx context.Context, s *domain.PlanSession, reply string) error {
	if s.Phase != domain.PhaseAwaitingClarification {
		return phaseError("clarify", s.Phase)
	}
	s.Append(domain.RoleUser, strings.TrimSpace(reply))
	s.Phase = domain.PhaseAnalyzing
	s.BeginCycle()
	return e.resume(ctx, s)
}

// Approve records the user's event selection and commits it to the calendar.
// Unknown IDs are ignored; an empty selection commits nothing but still
// completes the session.
func (e *Engine) Approve(ctx context.Context, s *domain.PlanSession, eventIDs []string) error {
	if s.Phase != domain.PhaseAwaitingApproval {
		return phaseError("approve", s.Phase)
	}
	s.ApprovedEventIDs = eventIDs
	s.Phase = domain.PhaseCommitting
	s.BeginCycle()
	return e.resume(ctx, s)
}

// Skip declines the suggested events and completes the session without any
// calendar writes or reasoning calls.
func (e *Engine) Skip(ctx context.Context, s *domain.PlanSession) error {
	if s.Phase != domain.PhaseAwaitingApproval {
		return phaseError("skip", s.Phase)
	}
	s.BeginCycle()
	s.SuggestedEvents = nil
	s.ApprovedEventIDs = nil
	s.Append(domain.RoleAssistant, "No problem! Your schedule suggestions were not added to the calendar. Start a new session whenever you want to plan again.")
	s.Phase = domain.PhaseDone
	s.UpdatedAt = e.now()
	return nil
}

// resume advances the session phase by phase until it parks on a phase that
// waits for user input (or completes). Each step is guarded so that
// re-running a cycle after a mid-step failure never repeats an applied
// side effect.
func (e *Engine) resume(ctx context.Context, s *domain.PlanSession) error {
	for {
		var err error
		parked := false

		switch s.Phase {
		case domain.PhaseGathering:
			err = e.gatherStep(ctx, s)
		case domain.PhaseAnalyzing:
			err = e.analyzeStep(ctx, s)
		case domain.PhaseAwaitingClarification:
			parked, err = e.clarifyStep(ctx, s)
		case domain.PhasePlanning:
			err = e.planStep(ctx, s)
		case domain.PhaseCommitting:
			err = e.commitStep(ctx, s)
		case domain.PhaseAwaitingApproval, domain.PhaseDone:
			parked = true
		default:
			err = fmt.Errorf("unknown session phase %q", s.Phase)
		}

		if err != nil {
			return err
		}
		if parked {
			s.UpdatedAt = e.now()
			return nil
		}
	}
}

// gatherStep fetches calendar and task context concurrently and records the
// opening user turn. The intent turn is appended only on the session's first
// cycle so that replays never duplicate it.
func (e *Engine) gatherStep(ctx context.Context, s *domain.PlanSession) error {
	var calendarCtx, todoCtx string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		calendarCtx = e.calendar.ContextSummary(gctx)
		return nil
	})
	g.Go(func() error {
		todoCtx = e.tasks.ContextSummary(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.CalendarContext = calendarCtx
	s.TodoContext = todoCtx

	if s.Applied.IntentCycle == 0 {
		s.Append(domain.RoleUser, s.UserIntent)
		s.Applied.IntentCycle = s.CycleCount
	}

	s.Phase = domain.PhaseAnalyzing
	return nil
}

// analyzeStep scores readiness to plan and branches: confident enough goes
// straight to planning, otherwise the session asks for clarification until
// the clarification budget is spent, after which a plan is forced.
func (e *Engine) analyzeStep(ctx context.Context, s *domain.PlanSession) error {
	resp, err := e.llm.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAnalysis,
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   buildAnalysisUserPrompt(s),
	})
	if err != nil {
		return fmt.Errorf("analyzing intent: %w", err)
	}

	result := ExtractAnalysis(resp.Text)
	s.Confidence = result.Confidence
	s.Analysis = result.Analysis
	s.MissingInfo = result.MissingInfo

	switch {
	case result.Confidence >= e.cfg.ConfidenceThreshold:
		s.Phase = domain.PhasePlanning
	case s.ClarificationCount >= e.cfg.MaxClarifications:
		// Clarification budget exhausted: plan with what we have.
		s.Phase = domain.PhasePlanning
	default:
		s.Phase = domain.PhaseAwaitingClarification
	}
	return nil
}

// clarifyStep asks one clarification question and parks the session until
// the user replies. The question is asked at most once per cycle.
func (e *Engine) clarifyStep(ctx context.Context, s *domain.PlanSession) (parked bool, err error) {
	if s.Applied.ClarifyCycle == s.CycleCount {
		return true, nil
	}

	resp, err := e.llm.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClarify,
		SystemPrompt: clarifySystemPrompt,
		UserPrompt:   buildClarifyUserPrompt(s),
	})
	if err != nil {
		return false, fmt.Errorf("generating clarification question: %w", err)
	}

	question := strings.TrimSpace(resp.Text)
	if question == "" {
		question = "Could you share a bit more detail about what you'd like to plan?"
	}

	s.Append(domain.RoleAssistant, question)
	s.ClarificationCount++
	s.Applied.ClarifyCycle = s.CycleCount
	return true, nil
}

// planStep generates the schedule, derives the approvable event candidates,
// and presents the plan. A replayed cycle that already planned only moves
// the phase forward.
func (e *Engine) planStep(ctx context.Context, s *domain.PlanSession) error {
	if s.Applied.PlanCycle == s.CycleCount {
		s.Phase = domain.PhaseAwaitingApproval
		return nil
	}

	resp, err := e.llm.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanUserPrompt(s),
	})
	if err != nil {
		return fmt.Errorf("generating plan: %w", err)
	}

	result := ExtractPlan(resp.Text)
	s.Schedule = result.Schedule
	s.ScheduleMetadata = result.Metadata
	s.SuggestedEvents = ConvertScheduleToEvents(result.Schedule)
	s.ApprovedEventIDs = nil

	s.Append(domain.RoleAssistant, RenderSchedule(s.Schedule, s.ScheduleMetadata))
	s.Applied.PlanCycle = s.CycleCount
	s.Phase = domain.PhaseAwaitingApproval
	return nil
}

// commitStep inserts the approved events, reports the outcome, refreshes the
// calendar context, and completes the session. Per-event failures are
// aggregated rather than aborting the batch.
func (e *Engine) commitStep(ctx context.Context, s *domain.PlanSession) error {
	if s.Applied.CommitCycle == s.CycleCount {
		s.Phase = domain.PhaseDone
		return nil
	}

	approved := selectApproved(s.SuggestedEvents, s.ApprovedEventIDs)

	var failedTitles []string
	added := 0
	for _, evt := range approved {
		err := e.calendar.Insert(ctx, evt.Title, evt.StartTime, evt.EndTime, composeEventDescription(evt))
		if err != nil {
			failedTitles = append(failedTitles, evt.Title)
			continue
		}
		added++
	}

	s.Append(domain.RoleAssistant, commitSummary(len(approved), added, failedTitles))

	// Refresh so a follow-up session sees the events we just wrote.
	s.CalendarContext = e.calendar.ContextSummary(ctx)

	s.SuggestedEvents = nil
	s.ApprovedEventIDs = nil
	s.Applied.CommitCycle = s.CycleCount
	s.Phase = domain.PhaseDone
	return nil
}

// selectApproved filters candidates down to the approved IDs, preserving
// suggestion order regardless of the order IDs were supplied in.
func selectApproved(suggested []domain.EventCandidate, ids []string) []domain.EventCandidate {
	if len(ids) == 0 {
		return nil
	}
	approved := make(map[string]bool, len(ids))
	for _, id := range ids {
		approved[id] = true
	}
	var out []domain.EventCandidate
	for _, evt := range suggested {
		if approved[evt.ID] {
			out = append(out, evt)
		}
	}
	return out
}

func commitSummary(requested, added int, failedTitles []string) string {
	switch {
	case requested == 0:
		return "No events were selected to add to your calendar."
	case added == requested:
		return fmt.Sprintf("Successfully added %d event(s) to your calendar!", added)
	case added == 0:
		return fmt.Sprintf("Failed to add any events: %s", strings.Join(failedTitles, ", "))
	default:
		return fmt.Sprintf("Added %d of %d events. Failed to add: %s", added, requested, strings.Join(failedTitles, ", "))
	}
}

// composeEventDescription builds the calendar event body from the candidate's
// planning attributes.
func composeEventDescription(evt domain.EventCandidate) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Priority: %s", evt.Priority))
	lines = append(lines, fmt.Sprintf("Type: %s", evt.Type))
	lines = append(lines, fmt.Sprintf("Energy: %s", evt.EnergyLevel))
	lines = append(lines, fmt.Sprintf("Cognitive load: %s", evt.CognitiveLoad))
	if len(evt.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("Tags: %s", strings.Join(evt.Tags, ", ")))
	}
	if evt.Rationale != "" {
		lines = append(lines, "", evt.Rationale)
	}
	lines = append(lines, "", fmt.Sprintf("Source: %s", evt.SourceTask))
	return strings.Join(lines, "\n")
}
