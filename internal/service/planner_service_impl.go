package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/planner"
	"github.com/alexanderramin/tempo/internal/repository"
)

type plannerService struct {
	sessions repository.SessionRepo
	engine   *planner.Engine
	observer UseCaseObserver
	now      func() time.Time

	// locks serializes turns per session; the engine must never run two
	// turns of the same session concurrently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPlannerService creates the planning service over its engine and store.
func NewPlannerService(sessions repository.SessionRepo, engine *planner.Engine, observers ...UseCaseObserver) PlannerService {
	return &plannerService{
		sessions: sessions,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *plannerService) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *plannerService) StartSession(ctx context.Context, intent string) (*domain.PlanSession, error) {
	start := s.now()
	session := domain.NewPlanSession(uuid.New().String(), start.UTC())

	lock := s.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	err := s.runTurn(ctx, session, func(working *domain.PlanSession) error {
		return s.engine.Start(ctx, working, intent)
	}, session)

	s.observe(ctx, "planner.start_session", start, err, map[string]any{
		"session_id": session.ID,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *plannerService) SubmitClarification(ctx context.Context, sessionID, reply string) (*domain.PlanSession, error) {
	start := s.now()
	session, err := s.loadAndRun(ctx, sessionID, func(working *domain.PlanSession) error {
		return s.engine.Clarify(ctx, working, reply)
	})
	s.observe(ctx, "planner.submit_clarification", start, err, map[string]any{
		"session_id": sessionID,
	})
	return session, err
}

func (s *plannerService) ApproveEvents(ctx context.Context, sessionID string, eventIDs []string) (*domain.PlanSession, error) {
	start := s.now()
	session, err := s.loadAndRun(ctx, sessionID, func(working *domain.PlanSession) error {
		return s.engine.Approve(ctx, working, eventIDs)
	})
	s.observe(ctx, "planner.approve_events", start, err, map[string]any{
		"session_id":     sessionID,
		"approved_count": len(eventIDs),
	})
	return session, err
}

func (s *plannerService) SkipEvents(ctx context.Context, sessionID string) (*domain.PlanSession, error) {
	start := s.now()
	session, err := s.loadAndRun(ctx, sessionID, func(working *domain.PlanSession) error {
		return s.engine.Skip(ctx, working)
	})
	s.observe(ctx, "planner.skip_events", start, err, map[string]any{
		"session_id": sessionID,
	})
	return session, err
}

func (s *plannerService) GetSession(ctx context.Context, sessionID string) (*domain.PlanSession, error) {
	return s.sessions.GetByID(ctx, sessionID)
}

func (s *plannerService) ListSessions(ctx context.Context) ([]repository.SessionSummary, error) {
	return s.sessions.List(ctx)
}

func (s *plannerService) ResetSession(ctx context.Context, sessionID string) error {
	start := s.now()
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	err := s.sessions.Delete(ctx, sessionID)
	s.observe(ctx, "planner.reset_session", start, err, map[string]any{
		"session_id": sessionID,
	})
	return err
}

// loadAndRun loads a session, runs one turn against a clone, and persists
// the clone only when the turn succeeded. Failed turns leave the stored
// session exactly as it was.
func (s *plannerService) loadAndRun(ctx context.Context, sessionID string, turn func(*domain.PlanSession) error) (*domain.PlanSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.runTurn(ctx, session, turn, session); err != nil {
		return nil, err
	}
	return session, nil
}

// runTurn executes one engine turn against a clone of session and, on
// success, copies the result back into out and saves it.
func (s *plannerService) runTurn(ctx context.Context, session *domain.PlanSession, turn func(*domain.PlanSession) error, out *domain.PlanSession) error {
	working, err := session.Clone()
	if err != nil {
		return err
	}

	if err := turn(working); err != nil {
		return err
	}

	if err := s.sessions.Save(ctx, working); err != nil {
		return err
	}

	*out = *working
	return nil
}

func (s *plannerService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  s.now().Sub(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}
