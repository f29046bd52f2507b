package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_AppliesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'plan_sessions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "plan_sessions", name)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already migrated; a second run must be a no-op.
	require.NoError(t, Migrate(database))

	_, err = database.Exec(
		`INSERT INTO plan_sessions (id, phase, state, created_at, updated_at)
		 VALUES ('s1', 'gathering', '{}', '2026-03-14T09:00:00Z', '2026-03-14T09:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(database))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM plan_sessions`).Scan(&count))
	assert.Equal(t, 1, count)
}
