package engine

import "context"

// Resource identifies an owned entity for a policy decision.
type Resource struct {
	Kind    string // "project" or "task"
	ID      string
	OwnerID string
}

// Evaluator decides whether a subject may access a resource.
type Evaluator interface {
	// Allow reports whether subjectID may access res. A false result with nil error is a denial.
	Allow(ctx context.Context, subjectID string, res Resource) (bool, error)
}
