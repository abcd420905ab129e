// Package domain holds the task entity and its closed enumerations.
package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits shared by create and update.
const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 2000
	MaxTagLen         = 64
	MaxTags           = 32
)

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo     Status = "TODO"
	StatusDoing    Status = "DOING"
	StatusDone     Status = "DONE"
	StatusArchived Status = "ARCHIVED"
)

// Statuses lists every valid Status.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone, StatusArchived}

// ParseStatus maps a case-insensitive name onto a Status.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range Statuses {
		if v == st {
			return st, true
		}
	}
	return "", false
}

// Priority is the urgency of a task. Ordered LOW < MEDIUM < HIGH < CRITICAL.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists every valid Priority in ascending rank.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ParsePriority maps a case-insensitive name onto a Priority.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range Priorities {
		if v == p {
			return p, true
		}
	}
	return "", false
}

// Rank returns the sort rank of p (0 for LOW); -1 when unknown.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i
		}
	}
	return -1
}

// Task belongs to exactly one project. Its owner is the project's owner.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueAt       *time.Time
	RemindAt    *time.Time
	Tags        []string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate applies defaults, normalizes tags and validates the task. Returns an error describing the first validation failure.
func (t *Task) Validate() error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLen {
		return errors.New("title must be at most 255 characters")
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLen {
		return errors.New("description must be at most 2000 characters")
	}
	if t.ProjectID == "" {
		return errors.New("project is required")
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if _, ok := ParseStatus(string(t.Status)); !ok {
		return errors.New("unknown status " + string(t.Status))
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Priority.Rank() < 0 {
		return errors.New("unknown priority " + string(t.Priority))
	}
	t.Tags = NormalizeTags(t.Tags)
	if len(t.Tags) > MaxTags {
		return errors.New("too many tags")
	}
	for _, tag := range t.Tags {
		if utf8.RuneCountInString(tag) > MaxTagLen {
			return errors.New("tag must be at most 64 characters")
		}
	}
	return nil
}

// FoldCase is the case folding shared by keyword filters and the stored search columns.
func FoldCase(s string) string {
	return strings.ToLower(s)
}

// HasAnyTag reports whether the task carries at least one of tags.
func (t *Task) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// NormalizeTags trims tags, drops empty ones and duplicates, and sorts the result.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
