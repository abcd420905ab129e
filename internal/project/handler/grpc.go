// Package handler exposes project management over gRPC.
package handler

import (
	"context"

	taskboardv1 "taskboard/backend/api/taskboard/v1"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	"taskboard/backend/internal/project/domain"
	"taskboard/backend/internal/project/service"
)

// IdentityResolver resolves the caller placed in the context by the auth interceptor.
type IdentityResolver interface {
	ResolveCurrentIdentity(ctx context.Context) (ownership.Identity, error)
}

// ProjectService is the project service used by Server.
type ProjectService interface {
	List(ctx context.Context, tenant ownership.Identity) ([]*domain.Project, error)
	Get(ctx context.Context, tenant ownership.Identity, projectID string) (*domain.Project, error)
	Create(ctx context.Context, tenant ownership.Identity, in service.Input) (*domain.Project, error)
	Update(ctx context.Context, tenant ownership.Identity, projectID string, in service.Input) (*domain.Project, error)
	Delete(ctx context.Context, tenant ownership.Identity, projectID string) error
}

// Server implements taskboardv1.ProjectServiceServer.
type Server struct {
	taskboardv1.UnimplementedProjectServiceServer
	identity IdentityResolver
	projects ProjectService
}

// NewServer returns a new Project gRPC server.
func NewServer(identity IdentityResolver, projects ProjectService) *Server {
	return &Server{identity: identity, projects: projects}
}

// ListProjects returns the caller's projects, newest first.
func (s *Server) ListProjects(ctx context.Context, req *taskboardv1.ListProjectsRequest) (*taskboardv1.ListProjectsResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	ps, err := s.projects.List(ctx, tenant)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	out := &taskboardv1.ListProjectsResponse{Projects: make([]*taskboardv1.Project, 0, len(ps))}
	for _, p := range ps {
		out.Projects = append(out.Projects, projectToWire(p))
	}
	return out, nil
}

func (s *Server) GetProject(ctx context.Context, req *taskboardv1.GetProjectRequest) (*taskboardv1.GetProjectResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	p, err := s.projects.Get(ctx, tenant, req.ID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.GetProjectResponse{Project: projectToWire(p)}, nil
}

func (s *Server) CreateProject(ctx context.Context, req *taskboardv1.CreateProjectRequest) (*taskboardv1.CreateProjectResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	p, err := s.projects.Create(ctx, tenant, service.Input{Name: &req.Name, Description: &req.Description})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.CreateProjectResponse{Project: projectToWire(p)}, nil
}

// UpdateProject replaces the project's name and description.
func (s *Server) UpdateProject(ctx context.Context, req *taskboardv1.UpdateProjectRequest) (*taskboardv1.UpdateProjectResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	p, err := s.projects.Update(ctx, tenant, req.ID, service.Input{Name: &req.Name, Description: &req.Description})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.UpdateProjectResponse{Project: projectToWire(p)}, nil
}

// DeleteProject removes the project and all of its tasks.
func (s *Server) DeleteProject(ctx context.Context, req *taskboardv1.DeleteProjectRequest) (*taskboardv1.DeleteProjectResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	if err := s.projects.Delete(ctx, tenant, req.ID); err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.DeleteProjectResponse{}, nil
}

func projectToWire(p *domain.Project) *taskboardv1.Project {
	if p == nil {
		return nil
	}
	return &taskboardv1.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
