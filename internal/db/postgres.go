package db

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a connection for the given driver ("postgres" or "sqlite") and DSN.
// Caller must call Close when done.
func Open(driver, dsn string) (*sql.DB, error) {
	d, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		return OpenSQLite(dsn)
	}
	return OpenPostgres(dsn)
}

// OpenPostgres opens a Postgres connection using the given DSN via the pgx stdlib driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
