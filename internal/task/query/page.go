package query

import "taskboard/backend/internal/platform/apperr"

// Page size bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a validated zero-based page window.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates page and size. Size 0 selects DefaultPageSize.
func NewPageRequest(page, size int) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, apperr.InvalidArgument("page must not be negative")
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 0 || size > MaxPageSize {
		return PageRequest{}, apperr.InvalidArgument("page size must be between 1 and %d", MaxPageSize)
	}
	return PageRequest{Page: page, Size: size}, nil
}

// Offset is the number of rows skipped before this page.
func (r PageRequest) Offset() int { return r.Page * r.Size }

// Page is one window of an ordered result. Total counts every match, not just Items.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Size  int
}

// TotalPages is the number of pages needed for Total items.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}
