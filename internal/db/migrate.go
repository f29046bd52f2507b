package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates from re-runs are tolerated.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// plan_sessions holds one row per planning session. The full session
	// record is stored as a JSON document in state; phase and timestamps are
	// lifted into columns for listing and filtering without deserializing.
	`CREATE TABLE IF NOT EXISTS plan_sessions (
		id         TEXT PRIMARY KEY,
		phase      TEXT NOT NULL,
		state      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_updated_at
		ON plan_sessions(updated_at)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_phase
		ON plan_sessions(phase)`,
}
