package test_utils

import (
	"database/sql"
	"testing"

	"github.com/bps3210/simkak/internal/database"
	_ "modernc.org/sqlite"
)

// NewInMemoryDB creates a new in-memory SQLite database for testing.
// Each database is completely isolated from others.
func NewInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// every new connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupLocalDB creates an in-memory SQLite database with the local (preferences) migrations applied.
func SetupLocalDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewInMemoryDB(t)
	if err := database.MigrateLocal(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	return db
}
