package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

const ownershipQuery = "data.taskboard.ownership.allow"

// DefaultOwnershipPolicy grants access only to the owner of the resource.
const DefaultOwnershipPolicy = `package taskboard.ownership

default allow := false

allow if {
	input.subject.id != ""
	input.subject.id == input.resource.owner_id
}
`

// OPAEvaluator evaluates the ownership policy with an in-process OPA Rego engine.
// The query is compiled once; evaluation is safe for concurrent use.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles policy (DefaultOwnershipPolicy when empty) and returns an evaluator.
// The policy must define data.taskboard.ownership.allow.
func NewOPAEvaluator(ctx context.Context, policy string) (*OPAEvaluator, error) {
	if policy == "" {
		policy = DefaultOwnershipPolicy
	}
	q, err := rego.New(
		rego.Query(ownershipQuery),
		rego.Module("ownership.rego", policy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("policy: compile ownership policy: %w", err)
	}
	return &OPAEvaluator{query: q}, nil
}

// Allow evaluates the ownership policy for subjectID and res.
func (e *OPAEvaluator) Allow(ctx context.Context, subjectID string, res Resource) (bool, error) {
	rs, err := e.query.Eval(ctx, rego.EvalInput(buildInput(subjectID, res)))
	if err != nil {
		return false, fmt.Errorf("policy: eval ownership: %w", err)
	}
	return rs.Allowed(), nil
}

// HealthCheck evaluates the policy against a fixed owner/non-owner pair. Returns nil when
// the engine answers and both decisions are as expected.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	res := Resource{Kind: "project", ID: "health", OwnerID: "owner"}
	ok, err := e.Allow(ctx, "owner", res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("policy: owner denied by ownership policy")
	}
	ok, err = e.Allow(ctx, "stranger", res)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("policy: non-owner allowed by ownership policy")
	}
	return nil
}

func buildInput(subjectID string, res Resource) map[string]interface{} {
	return map[string]interface{}{
		"subject": map[string]interface{}{
			"id": subjectID,
		},
		"resource": map[string]interface{}{
			"kind":     res.Kind,
			"id":       res.ID,
			"owner_id": res.OwnerID,
		},
	}
}
