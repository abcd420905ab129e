// Package query composes owner-scoped task filters into a canonical predicate and holds the
// sort and paging rules shared by the SQL and in-memory task stores.
package query

import (
	"sort"
	"strconv"
	"strings"

	projectdomain "taskboard/backend/internal/project/domain"
	taskdomain "taskboard/backend/internal/task/domain"
)

// Kind is the closed set of filter variants. The zero value marks an absent filter.
type Kind int

const (
	KindNone Kind = iota
	KindTenant
	KindProject
	KindArchived
	KindText
	KindStatus
	KindTags
)

func (k Kind) String() string {
	switch k {
	case KindTenant:
		return "tenant"
	case KindProject:
		return "project"
	case KindArchived:
		return "archived"
	case KindText:
		return "text"
	case KindStatus:
		return "status"
	case KindTags:
		return "tags"
	default:
		return "none"
	}
}

// Filter is one term of a conjunction. Value holds the operand of scalar kinds; Values holds
// the normalized tag set of KindTags.
type Filter struct {
	Kind   Kind
	Value  string
	Values []string
}

// Tenant restricts tasks to projects owned by ownerID.
func Tenant(ownerID string) Filter { return Filter{Kind: KindTenant, Value: ownerID} }

// Project restricts tasks to one project.
func Project(projectID string) Filter { return Filter{Kind: KindProject, Value: projectID} }

// Archived restricts tasks by their archived flag.
func Archived(archived bool) Filter {
	return Filter{Kind: KindArchived, Value: strconv.FormatBool(archived)}
}

// Text matches tasks whose title or description contains keyword, ignoring case.
// A blank keyword is an absent filter.
func Text(keyword string) Filter {
	keyword = taskdomain.FoldCase(strings.TrimSpace(keyword))
	if keyword == "" {
		return Filter{}
	}
	return Filter{Kind: KindText, Value: keyword}
}

// StatusIs restricts tasks to one status.
func StatusIs(s taskdomain.Status) Filter {
	if s == "" {
		return Filter{}
	}
	return Filter{Kind: KindStatus, Value: string(s)}
}

// AnyTag matches tasks carrying at least one of tags. An empty set is an absent filter.
func AnyTag(tags []string) Filter {
	tags = taskdomain.NormalizeTags(tags)
	if len(tags) == 0 {
		return Filter{}
	}
	return Filter{Kind: KindTags, Values: tags}
}

// Absent reports whether f contributes nothing to a predicate.
func (f Filter) Absent() bool { return f.Kind == KindNone }

// Bool returns the operand of a KindArchived filter.
func (f Filter) Bool() bool { return f.Value == "true" }

func (f Filter) key() string {
	if f.Kind == KindTags {
		return strings.Join(f.Values, "\x00")
	}
	return f.Value
}

func (f Filter) less(o Filter) bool {
	if f.Kind != o.Kind {
		return f.Kind < o.Kind
	}
	return f.key() < o.key()
}

func (f Filter) matches(t *taskdomain.Task, p *projectdomain.Project) bool {
	switch f.Kind {
	case KindTenant:
		return p != nil && p.OwnerID == f.Value
	case KindProject:
		return t.ProjectID == f.Value
	case KindArchived:
		return t.Archived == f.Bool()
	case KindText:
		return strings.Contains(taskdomain.FoldCase(t.Title), f.Value) ||
			strings.Contains(taskdomain.FoldCase(t.Description), f.Value)
	case KindStatus:
		return string(t.Status) == f.Value
	case KindTags:
		return t.HasAnyTag(f.Values)
	default:
		return true
	}
}

// Predicate is a canonical conjunction of filters: terms sorted by kind then operand, exact
// duplicates removed. Two predicates built from the same filters in any order are equal term by term.
type Predicate struct {
	terms []Filter
}

// Fold combines filters into a Predicate. Absent filters are skipped.
func Fold(filters ...Filter) Predicate {
	terms := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if !f.Absent() {
			terms = append(terms, f)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].less(terms[j]) })
	out := terms[:0]
	for _, f := range terms {
		if n := len(out); n > 0 && f.Kind == out[n-1].Kind && f.key() == out[n-1].key() {
			continue
		}
		out = append(out, f)
	}
	return Predicate{terms: out}
}

// Terms returns a copy of the canonical terms.
func (p Predicate) Terms() []Filter {
	out := make([]Filter, len(p.terms))
	copy(out, p.terms)
	return out
}

// Equal reports whether p and o have the same canonical terms.
func (p Predicate) Equal(o Predicate) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].Kind != o.terms[i].Kind || p.terms[i].key() != o.terms[i].key() {
			return false
		}
	}
	return true
}

// Matches evaluates the predicate against a task and its owning project.
func (p Predicate) Matches(t *taskdomain.Task, project *projectdomain.Project) bool {
	if t == nil {
		return false
	}
	for _, f := range p.terms {
		if !f.matches(t, project) {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	parts := make([]string, len(p.terms))
	for i, f := range p.terms {
		if f.Kind == KindTags {
			parts[i] = f.Kind.String() + " in [" + strings.Join(f.Values, ",") + "]"
		} else {
			parts[i] = f.Kind.String() + "=" + f.Value
		}
	}
	return strings.Join(parts, " AND ")
}
