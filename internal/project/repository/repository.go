package repository

import (
	"context"

	"taskboard/backend/internal/project/domain"
)

// Repository defines persistence for projects. Writes are scoped by owner id.
type Repository interface {
	// GetByID returns the project or nil, nil when missing.
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// ListByOwner returns the owner's projects, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	// Update writes name and description when p.ID is owned by p.OwnerID.
	Update(ctx context.Context, p *domain.Project) error
	// Delete removes the project with its tasks and tags in one transaction.
	Delete(ctx context.Context, ownerID, id string) error
	// DeleteAll removes every project, task and tag. Used by the seed tool.
	DeleteAll(ctx context.Context) error
}
