package query

import (
	"strings"

	"taskboard/backend/internal/platform/apperr"
	taskdomain "taskboard/backend/internal/task/domain"
)

// SortField is a sortable task attribute, named as clients send it.
type SortField string

const (
	SortTitle     SortField = "title"
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortPriority  SortField = "priority"
	SortDueAt     SortField = "dueAt"
)

var sortFields = map[SortField]bool{
	SortTitle: true, SortCreatedAt: true, SortUpdatedAt: true, SortPriority: true, SortDueAt: true,
}

// DefaultSort orders newest tasks first.
var DefaultSort = Sort{Field: SortCreatedAt, Desc: true}

// Sort is a single-field order. Ties are always broken by id ascending.
type Sort struct {
	Field SortField
	Desc  bool
}

// ParseSort parses "field[,direction]". Direction is ASC or DESC in any case and defaults to DESC.
// An empty string yields DefaultSort.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return Sort{}, apperr.InvalidArgument("sort %q: expected field[,direction]", s)
	}
	field := SortField(strings.TrimSpace(parts[0]))
	if !sortFields[field] {
		return Sort{}, apperr.InvalidArgument("unknown sort field %q", field)
	}
	out := Sort{Field: field, Desc: true}
	if len(parts) == 2 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "ASC":
			out.Desc = false
		case "DESC":
		default:
			return Sort{}, apperr.InvalidArgument("unknown sort direction %q", parts[1])
		}
	}
	return out, nil
}

func (s Sort) String() string {
	if s.Desc {
		return string(s.Field) + ",DESC"
	}
	return string(s.Field) + ",ASC"
}

// Compare orders a before b (negative), after b (positive), or equal (0) under s, including the
// id tie-breaker. A nil dueAt sorts last in both directions.
func (s Sort) Compare(a, b *taskdomain.Task) int {
	if c := s.compareField(a, b); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func (s Sort) compareField(a, b *taskdomain.Task) int {
	var c int
	switch s.Field {
	case SortTitle:
		c = strings.Compare(a.Title, b.Title)
	case SortUpdatedAt:
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	case SortPriority:
		c = a.Priority.Rank() - b.Priority.Rank()
	case SortDueAt:
		switch {
		case a.DueAt == nil && b.DueAt == nil:
			return 0
		case a.DueAt == nil:
			return 1
		case b.DueAt == nil:
			return -1
		}
		c = a.DueAt.Compare(*b.DueAt)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if s.Desc {
		return -c
	}
	return c
}
