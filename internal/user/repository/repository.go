package repository

import (
	"context"

	"taskboard/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	// GetByID returns the user or nil, nil when missing.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns the user or nil, nil when missing. email must be normalized.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts u. Returns apperr.ErrConflict when the email is taken.
	Create(ctx context.Context, u *domain.User) error
	// Update writes display name, avatar and updated_at for u.ID.
	Update(ctx context.Context, u *domain.User) error
}
