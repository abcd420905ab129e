// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"taskboard/backend/internal/db"
)

// NewSQLite returns an in-memory SQLite database with the schema applied.
// It is closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.EnsureSchema(context.Background(), conn, db.SQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return conn
}

var seedTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedUser inserts a user row with email <id>@example.com and a placeholder password hash.
func SeedUser(t testing.TB, conn *sql.DB, id string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT INTO users (id, email, password_hash, display_name, role, created_at, updated_at) VALUES (?, ?, ?, ?, 'USER', ?, ?)",
		id, id+"@example.com", "$2a$04$placeholder", id, seedTime, seedTime)
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

// SeedProject inserts a project owned by ownerID. The owner must exist.
func SeedProject(t testing.TB, conn *sql.DB, ownerID, id string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT INTO projects (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)",
		id, ownerID, "project "+id, seedTime)
	if err != nil {
		t.Fatalf("seed project %s: %v", id, err)
	}
}
