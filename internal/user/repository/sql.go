package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskboard/backend/internal/db"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/user/domain"
)

const userColumns = "id, email, password_hash, display_name, avatar_url, role, created_at, updated_at"

// SQLRepository is a Repository over database/sql for Postgres or SQLite.
type SQLRepository struct {
	conn    *sql.DB
	dialect db.Dialect
}

// NewSQLRepository returns a user repository that uses the given db for persistence.
func NewSQLRepository(conn *sql.DB, dialect db.Dialect) *SQLRepository {
	return &SQLRepository{conn: conn, dialect: dialect}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *SQLRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// GetByEmail returns the user with the given email, or nil if not found.
func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	row := r.conn.QueryRowContext(ctx, r.dialect.Rebind(query), arg)
	var (
		u      domain.User
		avatar sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &avatar, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.AvatarURL = avatar.String
	return &u, nil
}

// Create persists the user. The user must have ID set; it is not assigned by this method.
func (r *SQLRepository) Create(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return apperr.InvalidArgument("user: %v", err)
	}
	_, err := r.conn.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"),
		u.ID, u.Email, u.PasswordHash, u.DisplayName, nullString(u.AvatarURL), u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if db.IsUniqueViolation(err) {
		return apperr.ErrConflict
	}
	return err
}

// Update updates the profile fields of the existing user record.
func (r *SQLRepository) Update(ctx context.Context, u *domain.User) error {
	res, err := r.conn.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE users SET display_name = ?, avatar_url = ?, updated_at = ? WHERE id = ?"),
		u.DisplayName, nullString(u.AvatarURL), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("user", u.ID)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
