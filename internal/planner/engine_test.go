package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/llm"
	"github.com/alexanderramin/tempo/internal/testutil"
)

type insertedEvent struct {
	Title       string
	Start       string
	End         string
	Description string
}

type stubCalendar struct {
	summary      string
	summaryCalls int
	inserted     []insertedEvent
	failTitles   map[string]bool
}

func (c *stubCalendar) ContextSummary(ctx context.Context) string {
	c.summaryCalls++
	return fmt.Sprintf("%s (fetch %d)", c.summary, c.summaryCalls)
}

func (c *stubCalendar) Insert(ctx context.Context, title, startLocal, endLocal, description string) error {
	if c.failTitles[title] {
		return errors.New("quota exceeded")
	}
	c.inserted = append(c.inserted, insertedEvent{Title: title, Start: startLocal, End: endLocal, Description: description})
	return nil
}

type stubTasks struct {
	summary string
}

func (t *stubTasks) ContextSummary(ctx context.Context) string {
	return t.summary
}

const (
	confidentAnalysis = `{"confidence": 0.9, "analysis": "priorities are clear", "missing_info": ""}`
	vagueAnalysis     = `{"confidence": 0.4, "analysis": "intent is vague", "missing_info": "preferred time window"}`

	twoBlockPlan = `{
		"schedule": [
			{"start_time": "2026-03-16 09:00", "end_time": "2026-03-16 10:30", "title": "Deep work", "priority": "P1", "type": "work", "energy_level": "high", "cognitive_load": "high", "rationale": "Peak focus window."},
			{"start_time": "2026-03-16 10:30", "end_time": "2026-03-16 10:45", "title": "Break", "type": "break"},
			{"start_time": "2026-03-16 10:45", "end_time": "2026-03-16 11:15", "title": "Email triage", "priority": "P3", "type": "admin"}
		],
		"metadata": {"total_blocks": 3, "work_minutes": 120, "break_minutes": 15, "summary": "Front-loaded focus with a buffer."}
	}`
)

func newTestEngine(client llm.Client, cal *stubCalendar, tasks *stubTasks) *Engine {
	return NewEngine(client, cal, tasks, DefaultConfig()).WithClock(func() time.Time {
		return time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	})
}

func startedSession(t *testing.T, e *Engine, intent string) *domain.PlanSession {
	t.Helper()
	s := testutil.NewTestSession()
	require.NoError(t, e.Start(context.Background(), s, intent))
	return s
}

func TestEngine_Start_ConfidentIntentGoesStraightToApproval(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "calendar ok"}
	tasks := &stubTasks{summary: "tasks ok"}
	e := newTestEngine(client, cal, tasks)

	s := startedSession(t, e, "Plan a focused morning around my P1 report")

	assert.Equal(t, domain.PhaseAwaitingApproval, s.Phase)
	assert.Equal(t, 0, client.CallCount(llm.TaskClarify))
	assert.InDelta(t, 0.9, s.Confidence, 0.001)

	// Context gathered once, from both providers.
	assert.Contains(t, s.CalendarContext, "calendar ok")
	assert.Equal(t, "tasks ok", s.TodoContext)

	// Transcript: one user turn, one assistant schedule message.
	require.Len(t, s.Conversation, 2)
	assert.Equal(t, domain.RoleUser, s.Conversation[0].Role)
	assert.Equal(t, "Plan a focused morning around my P1 report", s.Conversation[0].Content)
	assert.Equal(t, domain.RoleAssistant, s.Conversation[1].Role)
	assert.Contains(t, s.Conversation[1].Content, "Deep work")

	// Break excluded from candidates; IDs track the source schedule.
	require.Len(t, s.SuggestedEvents, 2)
	assert.Equal(t, "evt_1", s.SuggestedEvents[0].ID)
	assert.Equal(t, "evt_3", s.SuggestedEvents[1].ID)

	assert.Equal(t, 1, s.CycleCount)
	assert.Equal(t, 1, s.Applied.IntentCycle)
	assert.Equal(t, 1, s.Applied.PlanCycle)
}

func TestEngine_Start_VagueIntentAsksForClarification(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, vagueAnalysis).
		Script(llm.TaskClarify, "What time window works best for the deep work?")
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "help me plan stuff")

	assert.Equal(t, domain.PhaseAwaitingClarification, s.Phase)
	assert.Equal(t, 1, s.ClarificationCount)
	assert.Equal(t, "preferred time window", s.MissingInfo)

	require.Len(t, s.Conversation, 2)
	assert.Equal(t, "What time window works best for the deep work?", s.Conversation[1].Content)
}

func TestEngine_Clarify_AnswerLeadsToPlan(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, vagueAnalysis, confidentAnalysis).
		Script(llm.TaskClarify, "When do you want to start?").
		Script(llm.TaskPlan, twoBlockPlan)
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "help me plan stuff")
	require.Equal(t, domain.PhaseAwaitingClarification, s.Phase)

	require.NoError(t, e.Clarify(context.Background(), s, "Mornings, 9 to noon"))

	assert.Equal(t, domain.PhaseAwaitingApproval, s.Phase)
	assert.Equal(t, 2, s.CycleCount)

	// Transcript: intent, question, answer, schedule.
	require.Len(t, s.Conversation, 4)
	assert.Equal(t, domain.RoleUser, s.Conversation[2].Role)
	assert.Equal(t, "Mornings, 9 to noon", s.Conversation[2].Content)
}

func TestEngine_ClarificationBudgetForcesPlan(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, vagueAnalysis, vagueAnalysis, vagueAnalysis).
		Script(llm.TaskClarify, "Question one?", "Question two?").
		Script(llm.TaskPlan, twoBlockPlan)
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "vague")
	require.Equal(t, domain.PhaseAwaitingClarification, s.Phase)

	require.NoError(t, e.Clarify(context.Background(), s, "still vague"))
	require.Equal(t, domain.PhaseAwaitingClarification, s.Phase)
	assert.Equal(t, 2, s.ClarificationCount)

	// Budget spent: the third low-confidence analysis plans anyway.
	require.NoError(t, e.Clarify(context.Background(), s, "no idea"))
	assert.Equal(t, domain.PhaseAwaitingApproval, s.Phase)

	assert.Equal(t, 3, client.CallCount(llm.TaskAnalysis))
	assert.Equal(t, 2, client.CallCount(llm.TaskClarify))
	assert.Equal(t, 1, client.CallCount(llm.TaskPlan))
}

func TestEngine_UnparseableAnalysisFallsBackToClarification(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, "let me think about this differently...").
		Script(llm.TaskClarify, "Could you give me more detail?")
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan something")

	// Fallback confidence 0.5 sits below the 0.75 gate.
	assert.Equal(t, domain.PhaseAwaitingClarification, s.Phase)
	assert.InDelta(t, 0.5, s.Confidence, 0.001)
	assert.Equal(t, fallbackMissingInfo, s.MissingInfo)
}

func TestEngine_UnparseablePlanStillParksForApproval(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, "I give up")
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")

	assert.Equal(t, domain.PhaseAwaitingApproval, s.Phase)
	assert.Empty(t, s.SuggestedEvents)
	assert.Contains(t, s.Conversation[len(s.Conversation)-1].Content, "wasn't able to produce a schedule")
}

func TestEngine_Approve_CommitsSelectedEvents(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "cal"}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")
	fetchesBefore := cal.summaryCalls

	require.NoError(t, e.Approve(context.Background(), s, []string{"evt_1", "evt_3"}))

	assert.Equal(t, domain.PhaseDone, s.Phase)
	require.Len(t, cal.inserted, 2)
	assert.Equal(t, "Deep work", cal.inserted[0].Title)
	assert.Equal(t, "2026-03-16 09:00", cal.inserted[0].Start)
	assert.Contains(t, cal.inserted[0].Description, "Priority: P1")
	assert.Contains(t, cal.inserted[0].Description, "Peak focus window.")
	assert.Contains(t, cal.inserted[0].Description, "Source: Planned schedule")

	last := s.Conversation[len(s.Conversation)-1]
	assert.Equal(t, "Successfully added 2 event(s) to your calendar!", last.Content)

	// Calendar context refreshed after the writes; state cleared.
	assert.Equal(t, fetchesBefore+1, cal.summaryCalls)
	assert.Empty(t, s.SuggestedEvents)
	assert.Empty(t, s.ApprovedEventIDs)
	assert.Equal(t, s.CycleCount, s.Applied.CommitCycle)
}

func TestEngine_Approve_PartialFailureAggregates(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "cal", failTitles: map[string]bool{"Email triage": true}}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")
	require.NoError(t, e.Approve(context.Background(), s, []string{"evt_1", "evt_3"}))

	assert.Equal(t, domain.PhaseDone, s.Phase)
	require.Len(t, cal.inserted, 1)

	last := s.Conversation[len(s.Conversation)-1]
	assert.Equal(t, "Added 1 of 2 events. Failed to add: Email triage", last.Content)
}

func TestEngine_Approve_AllFail(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "cal", failTitles: map[string]bool{"Deep work": true, "Email triage": true}}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")
	require.NoError(t, e.Approve(context.Background(), s, []string{"evt_1", "evt_3"}))

	assert.Equal(t, domain.PhaseDone, s.Phase)
	last := s.Conversation[len(s.Conversation)-1]
	assert.Equal(t, "Failed to add any events: Deep work, Email triage", last.Content)
}

func TestEngine_Approve_EmptySelection(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "cal"}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")
	require.NoError(t, e.Approve(context.Background(), s, nil))

	assert.Equal(t, domain.PhaseDone, s.Phase)
	assert.Empty(t, cal.inserted)
	last := s.Conversation[len(s.Conversation)-1]
	assert.Equal(t, "No events were selected to add to your calendar.", last.Content)
}

func TestEngine_Approve_UnknownIDsIgnoredAndOrderPreserved(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "cal"}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")
	// IDs in reverse order, plus one that doesn't exist.
	require.NoError(t, e.Approve(context.Background(), s, []string{"evt_3", "evt_99", "evt_1"}))

	require.Len(t, cal.inserted, 2)
	assert.Equal(t, "Deep work", cal.inserted[0].Title)
	assert.Equal(t, "Email triage", cal.inserted[1].Title)
}

func TestEngine_Skip_CompletesWithoutWritesOrReasoning(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		Script(llm.TaskPlan, twoBlockPlan)
	cal := &stubCalendar{summary: "cal"}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "plan my day")
	callsBefore := len(client.Calls)

	require.NoError(t, e.Skip(context.Background(), s))

	assert.Equal(t, domain.PhaseDone, s.Phase)
	assert.Empty(t, s.SuggestedEvents)
	assert.Empty(t, cal.inserted)
	assert.Len(t, client.Calls, callsBefore)
}

func TestEngine_PhasePreconditions(t *testing.T) {
	client := testutil.NewScriptedLLM()
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})
	ctx := context.Background()

	fresh := testutil.NewTestSession()
	assert.ErrorIs(t, e.Clarify(ctx, fresh, "answer"), ErrInvalidPhase)
	assert.ErrorIs(t, e.Approve(ctx, fresh, nil), ErrInvalidPhase)
	assert.ErrorIs(t, e.Skip(ctx, fresh), ErrInvalidPhase)

	done := testutil.NewTestSession(testutil.WithPhase(domain.PhaseDone))
	assert.ErrorIs(t, e.Start(ctx, done, "again"), ErrInvalidPhase)
}

func TestEngine_ReasoningFailurePropagates(t *testing.T) {
	client := testutil.NewScriptedLLM().FailWith(llm.TaskAnalysis, llm.ErrUnavailable)
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := testutil.NewTestSession()
	err := e.Start(context.Background(), s, "plan my day")
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestEngine_ResumeAfterPlanFailureDoesNotRepeatAppliedSteps(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, confidentAnalysis).
		FailWith(llm.TaskPlan, llm.ErrTimeout)
	cal := &stubCalendar{summary: "cal"}
	e := newTestEngine(client, cal, &stubTasks{summary: "todo"})

	s := testutil.NewTestSession()
	err := e.Start(context.Background(), s, "plan my day")
	require.ErrorIs(t, err, llm.ErrTimeout)

	// Gather and analyze applied; the failed plan step did not.
	assert.Equal(t, domain.PhasePlanning, s.Phase)
	assert.Equal(t, 1, s.Applied.IntentCycle)
	assert.Zero(t, s.Applied.PlanCycle)
	require.Len(t, s.Conversation, 1)

	// Backend recovers; resuming the same cycle finishes planning without
	// re-running gather or analysis.
	client.ClearFailure(llm.TaskPlan).Script(llm.TaskPlan, twoBlockPlan)
	require.NoError(t, e.resume(context.Background(), s))

	assert.Equal(t, domain.PhaseAwaitingApproval, s.Phase)
	assert.Equal(t, 1, client.CallCount(llm.TaskAnalysis))
	require.Len(t, s.Conversation, 2)
	assert.Equal(t, "plan my day", s.Conversation[0].Content)
}

func TestEngine_ReplayedPlanStepDoesNotDuplicate(t *testing.T) {
	client := testutil.NewScriptedLLM() // any reasoning call would error
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := testutil.NewTestSession(testutil.WithPhase(domain.PhasePlanning))
	s.CycleCount = 3
	s.Applied.PlanCycle = 3

	require.NoError(t, e.resume(context.Background(), s))
	assert.Equal(t, domain.PhaseAwaitingApproval, s.Phase)
	assert.Empty(t, client.Calls)
}

func TestEngine_ReplayedCommitStepDoesNotDuplicate(t *testing.T) {
	cal := &stubCalendar{summary: "cal"}
	e := newTestEngine(testutil.NewScriptedLLM(), cal, &stubTasks{summary: "todo"})

	s := testutil.NewTestSession(testutil.WithPhase(domain.PhaseCommitting))
	s.CycleCount = 4
	s.Applied.CommitCycle = 4
	s.ApprovedEventIDs = []string{"evt_1"}

	require.NoError(t, e.resume(context.Background(), s))
	assert.Equal(t, domain.PhaseDone, s.Phase)
	assert.Empty(t, cal.inserted)
}

func TestEngine_BlankClarificationQuestionGetsFallbackText(t *testing.T) {
	client := testutil.NewScriptedLLM().
		Script(llm.TaskAnalysis, vagueAnalysis).
		Script(llm.TaskClarify, "   \n")
	e := newTestEngine(client, &stubCalendar{summary: "cal"}, &stubTasks{summary: "todo"})

	s := startedSession(t, e, "vague")
	require.Len(t, s.Conversation, 2)
	assert.Equal(t, "Could you share a bit more detail about what you'd like to plan?", s.Conversation[1].Content)
}
