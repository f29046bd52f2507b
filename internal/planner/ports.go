package planner

import "context"

// CalendarGateway is the calendar surface the state machine needs: a
// context summary for prompts and a single write path for approved events.
// Summary failures are contained by the gateway (it returns error text as
// the summary), so the engine never branches on fetch errors.
type CalendarGateway interface {
	ContextSummary(ctx context.Context) string

	// Insert writes one event using calendar-local block times; the
	// gateway localizes them to the backend timezone.
	Insert(ctx context.Context, title, startLocal, endLocal, description string) error
}

// TaskGateway is the read-only task surface used for context gathering.
type TaskGateway interface {
	ContextSummary(ctx context.Context) string
}
