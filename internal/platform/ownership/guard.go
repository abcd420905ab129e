// Package ownership resolves the calling identity and enforces that projects and tasks are only
// reachable by their owner.
package ownership

import (
	"context"
	"fmt"

	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/policy/engine"
	projectdomain "taskboard/backend/internal/project/domain"
	"taskboard/backend/internal/server/interceptors"
	taskdomain "taskboard/backend/internal/task/domain"
	userdomain "taskboard/backend/internal/user/domain"
)

// Identity is the authenticated caller. UserID is the tenant key for every owned entity.
type Identity struct {
	UserID string
	Email  string
}

// UserGetter loads users by id; nil, nil when missing.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// ProjectGetter loads projects by id; nil, nil when missing.
type ProjectGetter interface {
	GetByID(ctx context.Context, id string) (*projectdomain.Project, error)
}

// TaskGetter loads tasks by id; nil, nil when missing.
type TaskGetter interface {
	GetByID(ctx context.Context, id string) (*taskdomain.Task, error)
}

// Guard loads entities at call time and asks the policy evaluator whether the tenant owns them.
// It holds no state of its own and is safe for concurrent use.
type Guard struct {
	users    UserGetter
	projects ProjectGetter
	tasks    TaskGetter
	policy   engine.Evaluator
}

// NewGuard returns a Guard. tasks may be nil when only projects are checked.
func NewGuard(users UserGetter, projects ProjectGetter, tasks TaskGetter, policy engine.Evaluator) *Guard {
	return &Guard{users: users, projects: projects, tasks: tasks, policy: policy}
}

// ResolveCurrentIdentity returns the caller placed in ctx by the auth interceptor.
// Fails with apperr.ErrUnauthenticated when ctx carries no user or the user no longer exists.
func (g *Guard) ResolveCurrentIdentity(ctx context.Context) (Identity, error) {
	userID, ok := interceptors.GetUserID(ctx)
	if !ok {
		return Identity{}, apperr.ErrUnauthenticated
	}
	u, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return Identity{}, apperr.Dependency("load user", err)
	}
	if u == nil {
		return Identity{}, fmt.Errorf("%w: unknown user", apperr.ErrUnauthenticated)
	}
	return Identity{UserID: u.ID, Email: u.Email}, nil
}

// RequireProject returns the project when tenant owns it. Missing and foreign projects both
// fail with apperr.ErrNotFound.
func (g *Guard) RequireProject(ctx context.Context, tenant Identity, projectID string) (*projectdomain.Project, error) {
	if projectID == "" {
		return nil, apperr.InvalidArgument("project id is required")
	}
	p, err := g.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, apperr.Dependency("load project", err)
	}
	if p == nil {
		return nil, apperr.NotFound("project", projectID)
	}
	if err := g.allow(ctx, tenant, engine.Resource{Kind: "project", ID: p.ID, OwnerID: p.OwnerID}); err != nil {
		return nil, err
	}
	return p, nil
}

// RequireTask returns the task and its project when tenant owns the project.
// Missing and foreign tasks both fail with apperr.ErrNotFound.
func (g *Guard) RequireTask(ctx context.Context, tenant Identity, taskID string) (*taskdomain.Task, *projectdomain.Project, error) {
	if taskID == "" {
		return nil, nil, apperr.InvalidArgument("task id is required")
	}
	if g.tasks == nil {
		return nil, nil, apperr.NotFound("task", taskID)
	}
	t, err := g.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, apperr.Dependency("load task", err)
	}
	if t == nil {
		return nil, nil, apperr.NotFound("task", taskID)
	}
	p, err := g.projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		return nil, nil, apperr.Dependency("load project", err)
	}
	if p == nil {
		return nil, nil, apperr.NotFound("task", taskID)
	}
	if err := g.allow(ctx, tenant, engine.Resource{Kind: "task", ID: t.ID, OwnerID: p.OwnerID}); err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

// allow maps a policy denial onto NotFound so callers cannot probe for foreign ids.
func (g *Guard) allow(ctx context.Context, tenant Identity, res engine.Resource) error {
	ok, err := g.policy.Allow(ctx, tenant.UserID, res)
	if err != nil {
		return apperr.Dependency("evaluate ownership", err)
	}
	if !ok {
		return apperr.NotFound(res.Kind, res.ID)
	}
	return nil
}
