package repository

import (
	"context"

	"taskboard/backend/internal/task/domain"
	"taskboard/backend/internal/task/query"
)

// Repository defines persistence for tasks and their tags.
type Repository interface {
	// GetByID returns the task with its tags, or nil, nil when missing.
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// Search returns one page of tasks matching pred in the order given by s, plus the total match count.
	Search(ctx context.Context, pred query.Predicate, s query.Sort, page query.PageRequest) (query.Page[*domain.Task], error)
	// Create inserts the task and its tags in one transaction.
	Create(ctx context.Context, t *domain.Task) error
	// Modify applies fn to the task owned by ownerID and persists the result, row and tag set,
	// in one transaction. Missing or foreign tasks fail with apperr.ErrNotFound.
	Modify(ctx context.Context, ownerID, id string, fn func(*domain.Task) error) (*domain.Task, error)
	// Delete removes the task and its tags.
	Delete(ctx context.Context, id string) error
}
