// Package repository persists tasks and renders search predicates as SQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/backend/internal/db"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/task/domain"
	"taskboard/backend/internal/task/query"
)

const taskColumns = "t.id, t.project_id, t.title, t.description, t.status, t.priority, t.due_at, t.remind_at, t.archived, t.created_at, t.updated_at"

const fromTasks = " FROM tasks t JOIN projects p ON p.id = t.project_id"

// SQLRepository is a Repository over database/sql for Postgres or SQLite.
type SQLRepository struct {
	conn    *sql.DB
	dialect db.Dialect

	// afterCount runs inside Search between the count and the page query.
	afterCount func()
}

// NewSQLRepository returns a task repository that uses the given db for persistence.
func NewSQLRepository(conn *sql.DB, dialect db.Dialect) *SQLRepository {
	return &SQLRepository{conn: conn, dialect: dialect}
}

// readSnapshot makes every statement of a search see the same committed state.
var readSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var (
		t        domain.Task
		desc     sql.NullString
		status   string
		priority string
		dueAt    sql.NullTime
		remindAt sql.NullTime
	)
	if err := s.Scan(&t.ID, &t.ProjectID, &t.Title, &desc, &status, &priority,
		&dueAt, &remindAt, &t.Archived, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Description = desc.String
	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	t.DueAt = timePtr(dueAt)
	t.RemindAt = timePtr(remindAt)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	t.Tags = []string{}
	return &t, nil
}

// GetByID returns the task for id with its tags, or nil if not found.
func (r *SQLRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.conn.QueryRowContext(ctx, r.dialect.Rebind("SELECT "+taskColumns+" FROM tasks t WHERE t.id = ?"), id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, r.conn, []*domain.Task{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// Search counts all matches, then loads the requested page and the tags of its tasks.
// All three statements run in one read-only transaction.
func (r *SQLRepository) Search(ctx context.Context, pred query.Predicate, s query.Sort, page query.PageRequest) (query.Page[*domain.Task], error) {
	out := query.Page[*domain.Task]{Items: []*domain.Task{}, Page: page.Page, Size: page.Size}
	err := r.inTx(ctx, readSnapshot, func(tx *sql.Tx) error {
		return r.search(ctx, tx, pred, s, page, &out)
	})
	return out, err
}

func (r *SQLRepository) search(ctx context.Context, tx *sql.Tx, pred query.Predicate, s query.Sort, page query.PageRequest, out *query.Page[*domain.Task]) error {
	where, args := whereClause(pred)

	if err := tx.QueryRowContext(ctx, r.dialect.Rebind("SELECT COUNT(*)"+fromTasks+where), args...).Scan(&out.Total); err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if r.afterCount != nil {
		r.afterCount()
	}
	if out.Total == 0 || page.Offset() >= out.Total {
		return nil
	}

	q := "SELECT " + taskColumns + fromTasks + where + " ORDER BY " + orderBy(s) + " LIMIT ? OFFSET ?"
	rows, err := tx.QueryContext(ctx, r.dialect.Rebind(q), append(args, page.Size, page.Offset())...)
	if err != nil {
		return fmt.Errorf("search tasks: %w", err)
	}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return err
		}
		out.Items = append(out.Items, t)
	}
	// Close before loading tags: a transaction runs on a single connection.
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	return r.loadTags(ctx, tx, out.Items)
}

// Create persists the task and its tags. ID and timestamps must be set by the caller.
func (r *SQLRepository) Create(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return apperr.InvalidArgument("task: %v", err)
	}
	return r.inTx(ctx, nil, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.dialect.Rebind(
			"INSERT INTO tasks (id, project_id, title, description, title_folded, description_folded, status, priority, due_at, remind_at, archived, created_at, updated_at) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
			t.ID, t.ProjectID, t.Title, nullString(t.Description), domain.FoldCase(t.Title), domain.FoldCase(t.Description),
			string(t.Status), string(t.Priority), nullTime(t.DueAt), nullTime(t.RemindAt), t.Archived, t.CreatedAt.UTC(), t.UpdatedAt.UTC())
		if err != nil {
			return err
		}
		return r.insertTags(ctx, tx, t.ID, t.Tags)
	})
}

// Modify loads the task owned by ownerID, applies fn and writes the result back, all in one
// transaction holding the row. Returns ErrNotFound when the task is missing or owned by
// someone else, and fn's error unchanged.
func (r *SQLRepository) Modify(ctx context.Context, ownerID, id string, fn func(*domain.Task) error) (*domain.Task, error) {
	var out *domain.Task
	err := r.inTx(ctx, nil, func(tx *sql.Tx) error {
		q := "SELECT " + taskColumns + fromTasks + " WHERE t.id = ? AND p.owner_id = ?"
		if r.dialect == db.Postgres {
			q += " FOR UPDATE OF t"
		}
		t, err := scanTask(tx.QueryRowContext(ctx, r.dialect.Rebind(q), id, ownerID))
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("task", id)
		}
		if err != nil {
			return err
		}
		if err := r.loadTags(ctx, tx, []*domain.Task{t}); err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return apperr.InvalidArgument("task: %v", err)
		}
		if err := r.write(ctx, tx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

func (r *SQLRepository) write(ctx context.Context, tx *sql.Tx, t *domain.Task) error {
	res, err := tx.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE tasks SET title = ?, description = ?, title_folded = ?, description_folded = ?, status = ?, priority = ?, "+
			"due_at = ?, remind_at = ?, archived = ?, updated_at = ? WHERE id = ?"),
		t.Title, nullString(t.Description), domain.FoldCase(t.Title), domain.FoldCase(t.Description),
		string(t.Status), string(t.Priority), nullTime(t.DueAt), nullTime(t.RemindAt), t.Archived, t.UpdatedAt.UTC(), t.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(res, t.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, r.dialect.Rebind("DELETE FROM task_tags WHERE task_id = ?"), t.ID); err != nil {
		return err
	}
	return r.insertTags(ctx, tx, t.ID, t.Tags)
}

// Delete removes the task and its tags. Returns ErrNotFound when the task is missing.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, nil, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.dialect.Rebind("DELETE FROM task_tags WHERE task_id = ?"), id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, r.dialect.Rebind("DELETE FROM tasks WHERE id = ?"), id)
		if err != nil {
			return err
		}
		return requireAffected(res, id)
	})
}

func (r *SQLRepository) insertTags(ctx context.Context, tx *sql.Tx, taskID string, tags []string) error {
	stmt := r.dialect.Rebind("INSERT INTO task_tags (task_id, tag) VALUES (?, ?)")
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, stmt, taskID, tag); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// loadTags fills Tags of every task with one query over the id list.
func (r *SQLRepository) loadTags(ctx context.Context, q queryer, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Task, len(tasks))
	args := make([]any, 0, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
		args = append(args, t.ID)
	}
	rows, err := q.QueryContext(ctx, r.dialect.Rebind(
		"SELECT task_id, tag FROM task_tags WHERE task_id IN ("+placeholders(len(args))+") ORDER BY task_id, tag"), args...)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var taskID, tag string
		if err := rows.Scan(&taskID, &tag); err != nil {
			return err
		}
		if t := byID[taskID]; t != nil {
			t.Tags = append(t.Tags, tag)
		}
	}
	return rows.Err()
}

// whereClause renders the predicate terms over the aliases t (tasks) and p (projects).
func whereClause(pred query.Predicate) (string, []any) {
	terms := pred.Terms()
	if len(terms) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(terms))
	var args []any
	for _, f := range terms {
		switch f.Kind {
		case query.KindTenant:
			clauses = append(clauses, "p.owner_id = ?")
			args = append(args, f.Value)
		case query.KindProject:
			clauses = append(clauses, "t.project_id = ?")
			args = append(args, f.Value)
		case query.KindArchived:
			clauses = append(clauses, "t.archived = ?")
			args = append(args, f.Bool())
		case query.KindText:
			pattern := "%" + escapeLike(f.Value) + "%"
			clauses = append(clauses, `(t.title_folded LIKE ? ESCAPE '\' OR t.description_folded LIKE ? ESCAPE '\')`)
			args = append(args, pattern, pattern)
		case query.KindStatus:
			clauses = append(clauses, "t.status = ?")
			args = append(args, f.Value)
		case query.KindTags:
			clauses = append(clauses, "EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = t.id AND tt.tag IN ("+placeholders(len(f.Values))+"))")
			for _, tag := range f.Values {
				args = append(args, tag)
			}
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

const priorityRank = "CASE t.priority WHEN 'LOW' THEN 0 WHEN 'MEDIUM' THEN 1 WHEN 'HIGH' THEN 2 WHEN 'CRITICAL' THEN 3 ELSE 4 END"

// orderBy renders s with the id tie-breaker. Null due dates sort last in both directions.
func orderBy(s query.Sort) string {
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}
	var col string
	switch s.Field {
	case query.SortTitle:
		col = "t.title" + dir
	case query.SortUpdatedAt:
		col = "t.updated_at" + dir
	case query.SortPriority:
		col = priorityRank + dir
	case query.SortDueAt:
		col = "CASE WHEN t.due_at IS NULL THEN 1 ELSE 0 END, t.due_at" + dir
	default:
		col = "t.created_at" + dir
	}
	return col + ", t.id ASC"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (r *SQLRepository) inTx(ctx context.Context, opts *sql.TxOptions, fn func(*sql.Tx) error) error {
	tx, err := r.conn.BeginTx(ctx, opts)
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
		return apperr.NotFound("task", id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
