package query

import (
	"context"

	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	projectdomain "taskboard/backend/internal/project/domain"
	taskdomain "taskboard/backend/internal/task/domain"
)

// ProjectGuard is the ownership check the composer runs before building any predicate.
type ProjectGuard interface {
	RequireProject(ctx context.Context, tenant ownership.Identity, projectID string) (*projectdomain.Project, error)
}

// Criteria are the optional, caller-supplied filters of a task search.
type Criteria struct {
	Keyword string
	// Status is parsed case-insensitively; empty means any status.
	Status string
	Tags   []string
}

// Composer builds search predicates for tasks of one project.
type Composer struct {
	guard ProjectGuard
}

// NewComposer returns a Composer that checks project ownership with guard.
func NewComposer(guard ProjectGuard) *Composer {
	return &Composer{guard: guard}
}

// Compose checks that tenant owns projectID, then returns the predicate
// project == projectID AND owner == tenant AND archived == false plus the optional criteria.
// Fails with apperr.ErrNotFound for missing or foreign projects and apperr.ErrInvalidArgument
// for an unknown status.
func (c *Composer) Compose(ctx context.Context, tenant ownership.Identity, projectID string, crit Criteria) (Predicate, error) {
	if _, err := c.guard.RequireProject(ctx, tenant, projectID); err != nil {
		return Predicate{}, err
	}
	status, err := parseOptionalStatus(crit.Status)
	if err != nil {
		return Predicate{}, err
	}
	return Fold(
		Project(projectID),
		Tenant(tenant.UserID),
		Archived(false),
		Text(crit.Keyword),
		StatusIs(status),
		AnyTag(crit.Tags),
	), nil
}

func parseOptionalStatus(s string) (taskdomain.Status, error) {
	if s == "" {
		return "", nil
	}
	st, ok := taskdomain.ParseStatus(s)
	if !ok {
		return "", apperr.InvalidArgument("unknown status %q", s)
	}
	return st, nil
}
