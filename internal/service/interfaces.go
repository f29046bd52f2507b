package service

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

// PlannerService is the application-facing surface for planning sessions.
// Each mutating call runs one orchestration turn and persists the resulting
// session state; the returned session reflects the state after the turn.
type PlannerService interface {
	// StartSession creates a session from the user's intent and runs it
	// until it parks (clarification question or suggested plan).
	StartSession(ctx context.Context, intent string) (*domain.PlanSession, error)

	// SubmitClarification answers the pending clarification question.
	SubmitClarification(ctx context.Context, sessionID, reply string) (*domain.PlanSession, error)

	// ApproveEvents commits the selected suggested events to the calendar.
	// An empty selection completes the session without writes.
	ApproveEvents(ctx context.Context, sessionID string, eventIDs []string) (*domain.PlanSession, error)

	// SkipEvents declines all suggested events and completes the session.
	SkipEvents(ctx context.Context, sessionID string) (*domain.PlanSession, error)

	// GetSession loads a stored session.
	GetSession(ctx context.Context, sessionID string) (*domain.PlanSession, error)

	// ListSessions returns summaries of stored sessions, most recent first.
	ListSessions(ctx context.Context) ([]repository.SessionSummary, error)

	// ResetSession deletes a stored session.
	ResetSession(ctx context.Context, sessionID string) error
}
