// Package service implements owner-scoped project management.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	"taskboard/backend/internal/project/domain"
	"taskboard/backend/internal/project/repository"
	"taskboard/backend/internal/telemetry"
	telemetrydomain "taskboard/backend/internal/telemetry/domain"
)

const eventSource = "project_service"

// Guard checks that the tenant owns a project.
type Guard interface {
	RequireProject(ctx context.Context, tenant ownership.Identity, projectID string) (*domain.Project, error)
}

// Input holds the editable project fields. Nil fields are left unchanged on update.
type Input struct {
	Name        *string
	Description *string
}

// ProjectService lists and edits the projects of one tenant at a time.
type ProjectService struct {
	guard  Guard
	repo   repository.Repository
	events telemetry.EventEmitter
	now    func() time.Time
	newID  func() string
}

// NewProjectService returns a ProjectService. events may be nil.
func NewProjectService(guard Guard, repo repository.Repository, events telemetry.EventEmitter) *ProjectService {
	return &ProjectService{
		guard:  guard,
		repo:   repo,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
	}
}

// List returns the tenant's projects, newest first.
func (s *ProjectService) List(ctx context.Context, tenant ownership.Identity) ([]*domain.Project, error) {
	ps, err := s.repo.ListByOwner(ctx, tenant.UserID)
	if err != nil {
		return nil, apperr.Dependency("list projects", err)
	}
	return ps, nil
}

func (s *ProjectService) Get(ctx context.Context, tenant ownership.Identity, projectID string) (*domain.Project, error) {
	return s.guard.RequireProject(ctx, tenant, projectID)
}

// Create adds a project owned by tenant. Name is required.
func (s *ProjectService) Create(ctx context.Context, tenant ownership.Identity, in Input) (*domain.Project, error) {
	p := &domain.Project{
		ID:        s.newID(),
		OwnerID:   tenant.UserID,
		CreatedAt: s.now(),
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Dependency("create project", err)
	}
	s.emit(tenant, "project_created", p.ID)
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, tenant ownership.Identity, projectID string, in Input) (*domain.Project, error) {
	p, err := s.guard.RequireProject(ctx, tenant, projectID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apperr.Dependency("update project", err)
	}
	s.emit(tenant, "project_updated", p.ID)
	return p, nil
}

// Delete removes the project with all of its tasks.
func (s *ProjectService) Delete(ctx context.Context, tenant ownership.Identity, projectID string) error {
	p, err := s.guard.RequireProject(ctx, tenant, projectID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenant.UserID, p.ID); err != nil {
		return apperr.Dependency("delete project", err)
	}
	s.emit(tenant, "project_deleted", p.ID)
	return nil
}

func (s *ProjectService) emit(tenant ownership.Identity, eventType, projectID string) {
	telemetry.EmitAsync(s.events, telemetrydomain.NewEvent(tenant.UserID, eventType, eventSource, map[string]string{
		"projectId": projectID,
	}))
}
