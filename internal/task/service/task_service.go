// Package service implements owner-scoped task search and editing.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	projectdomain "taskboard/backend/internal/project/domain"
	"taskboard/backend/internal/task/domain"
	"taskboard/backend/internal/task/query"
	"taskboard/backend/internal/task/repository"
	"taskboard/backend/internal/telemetry"
	telemetrydomain "taskboard/backend/internal/telemetry/domain"
)

const eventSource = "task_service"

// Guard is the ownership check run at the start of every operation.
type Guard interface {
	RequireProject(ctx context.Context, tenant ownership.Identity, projectID string) (*projectdomain.Project, error)
	RequireTask(ctx context.Context, tenant ownership.Identity, taskID string) (*domain.Task, *projectdomain.Project, error)
}

// SearchParams are the raw search inputs of one request.
type SearchParams struct {
	Keyword string
	Status  string
	Tags    []string
	Page    int
	Size    int
	Sort    string
}

// CreateInput describes a new task. Empty Status and Priority select TODO and MEDIUM.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueAt       *time.Time
	RemindAt    *time.Time
	Tags        []string
}

// UpdateInput changes only non-nil fields. Tags replaces the whole set.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueAt       *time.Time
	RemindAt    *time.Time
	Tags        *[]string
}

// TaskService re-derives task ownership through the guard on every call.
type TaskService struct {
	guard    Guard
	composer *query.Composer
	repo     repository.Repository
	events   telemetry.EventEmitter
	now      func() time.Time
	newID    func() string
}

// NewTaskService returns a TaskService. events may be nil.
func NewTaskService(guard Guard, repo repository.Repository, events telemetry.EventEmitter) *TaskService {
	return &TaskService{
		guard:    guard,
		composer: query.NewComposer(guard),
		repo:     repo,
		events:   events,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
}

// Search returns one page of the tenant's non-archived tasks in projectID that match params.
// Ownership is checked before any input is validated.
func (s *TaskService) Search(ctx context.Context, tenant ownership.Identity, projectID string, params SearchParams) (query.Page[*domain.Task], error) {
	pred, err := s.composer.Compose(ctx, tenant, projectID, query.Criteria{
		Keyword: params.Keyword,
		Status:  params.Status,
		Tags:    params.Tags,
	})
	if err != nil {
		return query.Page[*domain.Task]{}, err
	}
	order, err := query.ParseSort(params.Sort)
	if err != nil {
		return query.Page[*domain.Task]{}, err
	}
	page, err := query.NewPageRequest(params.Page, params.Size)
	if err != nil {
		return query.Page[*domain.Task]{}, err
	}
	res, err := s.repo.Search(ctx, pred, order, page)
	if err != nil {
		return query.Page[*domain.Task]{}, apperr.Dependency("search tasks", err)
	}
	return res, nil
}

// Get returns the task when tenant owns its project.
func (s *TaskService) Get(ctx context.Context, tenant ownership.Identity, taskID string) (*domain.Task, error) {
	t, _, err := s.guard.RequireTask(ctx, tenant, taskID)
	return t, err
}

// Create adds a task to projectID.
func (s *TaskService) Create(ctx context.Context, tenant ownership.Identity, projectID string, in CreateInput) (*domain.Task, error) {
	if _, err := s.guard.RequireProject(ctx, tenant, projectID); err != nil {
		return nil, err
	}
	now := s.now()
	t := &domain.Task{
		ID:          s.newID(),
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		DueAt:       in.DueAt,
		RemindAt:    in.RemindAt,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var err error
	if in.Status != "" {
		if t.Status, err = parseStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if in.Priority != "" {
		if t.Priority, err = parsePriority(in.Priority); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperr.Dependency("create task", err)
	}
	s.emit(tenant, "task_created", t)
	return t, nil
}

// Update applies the set fields of in to the task. The write re-reads the task under the
// owner check, so concurrent edits of other fields are kept.
func (s *TaskService) Update(ctx context.Context, tenant ownership.Identity, taskID string, in UpdateInput) (*domain.Task, error) {
	if _, _, err := s.guard.RequireTask(ctx, tenant, taskID); err != nil {
		return nil, err
	}
	var (
		status   domain.Status
		priority domain.Priority
		err      error
	)
	if in.Status != nil {
		if status, err = parseStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil {
		if priority, err = parsePriority(*in.Priority); err != nil {
			return nil, err
		}
	}
	now := s.now()
	t, err := s.repo.Modify(ctx, tenant.UserID, taskID, func(t *domain.Task) error {
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Status != nil {
			t.Status = status
		}
		if in.Priority != nil {
			t.Priority = priority
		}
		if in.DueAt != nil {
			t.DueAt = in.DueAt
		}
		if in.RemindAt != nil {
			t.RemindAt = in.RemindAt
		}
		if in.Tags != nil {
			t.Tags = *in.Tags
		}
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, apperr.Dependency("update task", err)
	}
	s.emit(tenant, "task_updated", t)
	return t, nil
}

// Archive hides the task from search without deleting it.
func (s *TaskService) Archive(ctx context.Context, tenant ownership.Identity, taskID string) error {
	if _, _, err := s.guard.RequireTask(ctx, tenant, taskID); err != nil {
		return err
	}
	now := s.now()
	t, err := s.repo.Modify(ctx, tenant.UserID, taskID, func(t *domain.Task) error {
		t.Archived = true
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return apperr.Dependency("archive task", err)
	}
	s.emit(tenant, "task_archived", t)
	return nil
}

// Delete removes the task and its tags.
func (s *TaskService) Delete(ctx context.Context, tenant ownership.Identity, taskID string) error {
	t, _, err := s.guard.RequireTask(ctx, tenant, taskID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, t.ID); err != nil {
		return apperr.Dependency("delete task", err)
	}
	s.emit(tenant, "task_deleted", t)
	return nil
}

func (s *TaskService) emit(tenant ownership.Identity, eventType string, t *domain.Task) {
	telemetry.EmitAsync(s.events, telemetrydomain.NewEvent(tenant.UserID, eventType, eventSource, map[string]string{
		"taskId":    t.ID,
		"projectId": t.ProjectID,
	}))
}

func parseStatus(s string) (domain.Status, error) {
	st, ok := domain.ParseStatus(s)
	if !ok {
		return "", apperr.InvalidArgument("unknown status %q", s)
	}
	return st, nil
}

func parsePriority(s string) (domain.Priority, error) {
	p, ok := domain.ParsePriority(s)
	if !ok {
		return "", apperr.InvalidArgument("unknown priority %q", s)
	}
	return p, nil
}
