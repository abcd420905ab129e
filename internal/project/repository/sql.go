package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/backend/internal/db"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/project/domain"
)

const projectColumns = "id, owner_id, name, description, created_at"

// SQLRepository is a Repository over database/sql for Postgres or SQLite.
type SQLRepository struct {
	conn    *sql.DB
	dialect db.Dialect
}

// NewSQLRepository returns a project repository that uses the given db for persistence.
func NewSQLRepository(conn *sql.DB, dialect db.Dialect) *SQLRepository {
	return &SQLRepository{conn: conn, dialect: dialect}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*domain.Project, error) {
	var (
		p    domain.Project
		desc sql.NullString
	)
	if err := s.Scan(&p.ID, &p.OwnerID, &p.Name, &desc, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Description = desc.String
	return &p, nil
}

// GetByID returns the project for id, or nil if not found.
func (r *SQLRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.conn.QueryRowContext(ctx, r.dialect.Rebind("SELECT "+projectColumns+" FROM projects WHERE id = ?"), id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// ListByOwner returns the owner's projects ordered by creation time, newest first.
func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	rows, err := r.conn.QueryContext(ctx, r.dialect.Rebind(
		"SELECT "+projectColumns+" FROM projects WHERE owner_id = ? ORDER BY created_at DESC, id ASC"), ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create persists the project. ID, OwnerID and CreatedAt must be set by the caller.
func (r *SQLRepository) Create(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return apperr.InvalidArgument("project: %v", err)
	}
	_, err := r.conn.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO projects ("+projectColumns+") VALUES (?, ?, ?, ?, ?)"),
		p.ID, p.OwnerID, p.Name, nullString(p.Description), p.CreatedAt)
	return err
}

// Update writes name and description. Returns ErrNotFound when the project is missing or owned by someone else.
func (r *SQLRepository) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return apperr.InvalidArgument("project: %v", err)
	}
	res, err := r.conn.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE projects SET name = ?, description = ? WHERE id = ? AND owner_id = ?"),
		p.Name, nullString(p.Description), p.ID, p.OwnerID)
	if err != nil {
		return err
	}
	return requireAffected(res, p.ID)
}

// Delete removes the project, its tasks and their tags atomically.
func (r *SQLRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRowContext(ctx, r.dialect.Rebind("SELECT owner_id FROM projects WHERE id = ?"), id).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != ownerID) {
			return apperr.NotFound("project", id)
		}
		if err != nil {
			return err
		}
		stmts := []string{
			"DELETE FROM task_tags WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
			"DELETE FROM tasks WHERE project_id = ?",
			"DELETE FROM projects WHERE id = ?",
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, r.dialect.Rebind(stmt), id); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAll removes all projects, tasks and tags.
func (r *SQLRepository) DeleteAll(ctx context.Context) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{"DELETE FROM task_tags", "DELETE FROM tasks", "DELETE FROM projects"} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLRepository) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("project", id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
