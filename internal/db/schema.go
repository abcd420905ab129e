package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema/postgres.sql
var postgresSchema string

//go:embed schema/sqlite.sql
var sqliteSchema string

// Schema returns the bootstrap DDL for the dialect. Every statement is idempotent.
func Schema(d Dialect) string {
	if d == SQLite {
		return sqliteSchema
	}
	return postgresSchema
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if _, err := db.ExecContext(ctx, Schema(d)); err != nil {
		return fmt.Errorf("db: ensure %s schema: %w", d, err)
	}
	return nil
}
