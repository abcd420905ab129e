// Package handler exposes task search and editing over gRPC.
package handler

import (
	"context"

	taskboardv1 "taskboard/backend/api/taskboard/v1"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	"taskboard/backend/internal/task/domain"
	"taskboard/backend/internal/task/query"
	"taskboard/backend/internal/task/service"
)

// IdentityResolver resolves the caller placed in the context by the auth interceptor.
type IdentityResolver interface {
	ResolveCurrentIdentity(ctx context.Context) (ownership.Identity, error)
}

// TaskService is the task service used by Server.
type TaskService interface {
	Search(ctx context.Context, tenant ownership.Identity, projectID string, params service.SearchParams) (query.Page[*domain.Task], error)
	Get(ctx context.Context, tenant ownership.Identity, taskID string) (*domain.Task, error)
	Create(ctx context.Context, tenant ownership.Identity, projectID string, in service.CreateInput) (*domain.Task, error)
	Update(ctx context.Context, tenant ownership.Identity, taskID string, in service.UpdateInput) (*domain.Task, error)
	Archive(ctx context.Context, tenant ownership.Identity, taskID string) error
	Delete(ctx context.Context, tenant ownership.Identity, taskID string) error
}

// Server implements taskboardv1.TaskServiceServer.
// The caller's identity is resolved once per RPC and passed to the service.
type Server struct {
	taskboardv1.UnimplementedTaskServiceServer
	identity IdentityResolver
	tasks    TaskService
}

// NewServer returns a new Task gRPC server.
func NewServer(identity IdentityResolver, tasks TaskService) *Server {
	return &Server{identity: identity, tasks: tasks}
}

// SearchTasks returns one page of the project's non-archived tasks.
func (s *Server) SearchTasks(ctx context.Context, req *taskboardv1.SearchTasksRequest) (*taskboardv1.SearchTasksResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	page, err := s.tasks.Search(ctx, tenant, req.ProjectID, service.SearchParams{
		Keyword: req.Keyword,
		Status:  req.Status,
		Tags:    req.Tags,
		Page:    req.Page,
		Size:    req.Size,
		Sort:    req.Sort,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	out := &taskboardv1.SearchTasksResponse{
		Tasks:      make([]*taskboardv1.Task, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages(),
	}
	for _, t := range page.Items {
		out.Tasks = append(out.Tasks, taskToWire(t))
	}
	return out, nil
}

func (s *Server) GetTask(ctx context.Context, req *taskboardv1.GetTaskRequest) (*taskboardv1.GetTaskResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	t, err := s.tasks.Get(ctx, tenant, req.ID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.GetTaskResponse{Task: taskToWire(t)}, nil
}

func (s *Server) CreateTask(ctx context.Context, req *taskboardv1.CreateTaskRequest) (*taskboardv1.CreateTaskResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	t, err := s.tasks.Create(ctx, tenant, req.ProjectID, service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueAt:       req.DueAt,
		RemindAt:    req.RemindAt,
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.CreateTaskResponse{Task: taskToWire(t)}, nil
}

// UpdateTask applies the fields set in the request.
func (s *Server) UpdateTask(ctx context.Context, req *taskboardv1.UpdateTaskRequest) (*taskboardv1.UpdateTaskResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	t, err := s.tasks.Update(ctx, tenant, req.ID, service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueAt:       req.DueAt,
		RemindAt:    req.RemindAt,
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.UpdateTaskResponse{Task: taskToWire(t)}, nil
}

func (s *Server) ArchiveTask(ctx context.Context, req *taskboardv1.ArchiveTaskRequest) (*taskboardv1.ArchiveTaskResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	if err := s.tasks.Archive(ctx, tenant, req.ID); err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.ArchiveTaskResponse{}, nil
}

func (s *Server) DeleteTask(ctx context.Context, req *taskboardv1.DeleteTaskRequest) (*taskboardv1.DeleteTaskResponse, error) {
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	if err := s.tasks.Delete(ctx, tenant, req.ID); err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.DeleteTaskResponse{}, nil
}

func taskToWire(t *domain.Task) *taskboardv1.Task {
	if t == nil {
		return nil
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &taskboardv1.Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueAt:       t.DueAt,
		RemindAt:    t.RemindAt,
		Tags:        tags,
		Archived:    t.Archived,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
