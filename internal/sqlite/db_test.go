package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.Migrate()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully.
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"columns",
		"collections",
		"datapoints",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled.
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestUniqueConstraints verifies the uniqueness rules the resolver relies on.
func TestUniqueConstraints(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (name, encoded_name, created_at) VALUES ('p', 'p', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO projects (name, encoded_name, created_at) VALUES ('p', 'p2', 0)`)
	require.Error(t, err, "duplicate project name should be rejected")

	_, err = db.Exec(`INSERT INTO projects (name, encoded_name, created_at) VALUES ('p two', 'p', 0)`)
	require.Error(t, err, "duplicate encoded name should be rejected")

	_, err = db.Exec(`INSERT INTO columns (project_id, name, encoded_name, created_at) VALUES (1, 'c', 'c', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO columns (project_id, name, encoded_name, created_at) VALUES (1, 'c', 'c2', 0)`)
	require.Error(t, err, "duplicate column name within a project should be rejected")
}
