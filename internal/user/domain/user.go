package domain

import (
	"errors"
	"strings"
	"time"
)

// RoleUser is the only role assigned at registration.
const RoleUser = "USER"

// User is an account that owns projects. Email is stored lower-cased and unique.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarURL    string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("id is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if len(u.DisplayName) > 255 {
		return errors.New("display name must be at most 255 characters")
	}
	if len(u.AvatarURL) > 2000 {
		return errors.New("avatar url must be at most 2000 characters")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// NormalizeEmail trims and lower-cases an email address so it can be used as a lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayNameFromEmail returns the local part of email, used as the initial display name.
func DisplayNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
