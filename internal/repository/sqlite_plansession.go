package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLitePlanSessionRepo implements SessionRepo using a SQLite database.
type SQLitePlanSessionRepo struct {
	db db.DBTX
}

// NewSQLitePlanSessionRepo creates a new SQLitePlanSessionRepo.
func NewSQLitePlanSessionRepo(dbtx db.DBTX) *SQLitePlanSessionRepo {
	return &SQLitePlanSessionRepo{db: dbtx}
}

func (r *SQLitePlanSessionRepo) Save(ctx context.Context, s *domain.PlanSession) error {
	state, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}

	query := `INSERT INTO plan_sessions (id, phase, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phase = excluded.phase,
			state = excluded.state,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Phase),
		string(state),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving plan session: %w", err)
	}
	return nil
}

func (r *SQLitePlanSessionRepo) GetByID(ctx context.Context, id string) (*domain.PlanSession, error) {
	query := `SELECT state FROM plan_sessions WHERE id = ?`
	var state string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading plan session: %w", err)
	}

	var s domain.PlanSession
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return nil, fmt.Errorf("decoding session state: %w", err)
	}
	return &s, nil
}

func (r *SQLitePlanSessionRepo) List(ctx context.Context) ([]SessionSummary, error) {
	query := `SELECT id, phase, created_at, updated_at
		FROM plan_sessions ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plan sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var phase, createdAtStr, updatedAtStr string
		if err := rows.Scan(&sum.ID, &phase, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sum.Phase = domain.Phase(phase)
		sum.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		sum.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return summaries, nil
}

func (r *SQLitePlanSessionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plan_sessions WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plan session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan session %s: %w", id, ErrNotFound)
	}
	return nil
}
