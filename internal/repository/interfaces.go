package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SessionSummary is the lightweight listing view of a stored session,
// scanned from columns without deserializing the state document.
type SessionSummary struct {
	ID        string
	Phase     domain.Phase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionRepo persists planning sessions as checkpoint documents. Save is an
// upsert: the stored row always reflects the last successfully completed
// orchestration pass.
type SessionRepo interface {
	Save(ctx context.Context, s *domain.PlanSession) error
	GetByID(ctx context.Context, id string) (*domain.PlanSession, error)
	List(ctx context.Context) ([]SessionSummary, error)
	Delete(ctx context.Context, id string) error
}
