package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits shared by create and update.
const (
	MaxNameLen        = 255
	MaxDescriptionLen = 2000
)

// Project groups tasks and is owned by exactly one user. The owner never changes.
type Project struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Validate normalizes and validates the project for persistence. Returns an error describing the first validation failure.
func (p *Project) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLen {
		return errors.New("name must be at most 255 characters")
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLen {
		return errors.New("description must be at most 2000 characters")
	}
	if p.OwnerID == "" {
		return errors.New("owner is required")
	}
	return nil
}
