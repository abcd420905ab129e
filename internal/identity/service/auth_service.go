// Package service implements account registration gated by emailed verification codes,
// password login, and the caller's profile.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/backend/internal/mail"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	"taskboard/backend/internal/security"
	"taskboard/backend/internal/telemetry"
	telemetrydomain "taskboard/backend/internal/telemetry/domain"
	userdomain "taskboard/backend/internal/user/domain"
	"taskboard/backend/internal/verification"
)

const eventSource = "auth_service"

// Password length bounds. bcrypt ignores bytes beyond MaxPasswordBytes.
const (
	MinPasswordLen = 8
	MaxPasswordLen = security.MaxPasswordBytes
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserRepo is the user persistence needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	Update(ctx context.Context, u *userdomain.User) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	IssueAccess(userID, email string) (string, time.Time, error)
}

// LoginResult is a signed access token and the authenticated user.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *userdomain.User
}

// ProfileInput changes only the fields that are set.
type ProfileInput struct {
	DisplayName *string
	AvatarURL   *string
}

// AuthService registers and authenticates users.
type AuthService struct {
	users  UserRepo
	codes  verification.Store
	mailer mail.Sender
	hasher PasswordHasher
	tokens TokenIssuer
	events telemetry.EventEmitter
	now    func() time.Time
}

// NewAuthService returns an AuthService. events may be nil.
func NewAuthService(users UserRepo, codes verification.Store, mailer mail.Sender, hasher PasswordHasher, tokens TokenIssuer, events telemetry.EventEmitter) *AuthService {
	return &AuthService{
		users:  users,
		codes:  codes,
		mailer: mailer,
		hasher: hasher,
		tokens: tokens,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SendCode issues a verification code for email and mails it. A delivery failure is logged
// and the issued code stays valid.
func (s *AuthService) SendCode(ctx context.Context, email string) error {
	email = userdomain.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return apperr.Dependency("issue verification code", err)
	}
	if err := s.mailer.Send(ctx, email, code); err != nil {
		log.Printf("auth: send verification code to %s: %v", email, err)
	}
	s.emit("", "verification_code_sent", map[string]string{"email": email})
	return nil
}

// Register creates an account after the emailed code checks out. The code is consumed even when
// the email turns out to be taken.
func (s *AuthService) Register(ctx context.Context, email, password, code string) (*userdomain.User, error) {
	email = userdomain.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, apperr.ErrVerificationFailed
	}
	ok, err := s.codes.Verify(ctx, email, code)
	if err != nil {
		return nil, apperr.Dependency("verify code", err)
	}
	if !ok {
		return nil, apperr.ErrVerificationFailed
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Dependency("load user", err)
	}
	if existing != nil {
		return nil, apperr.ErrConflict
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	u := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  userdomain.DisplayNameFromEmail(email),
		Role:         userdomain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperr.Dependency("create user", err)
	}
	s.emit(u.ID, "user_registered", nil)
	return u, nil
}

// Login checks the password and returns a signed access token. Unknown emails and wrong
// passwords both fail with apperr.ErrUnauthenticated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = userdomain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.ErrUnauthenticated
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Dependency("load user", err)
	}
	if u == nil {
		s.emit("", "login_failure", map[string]string{"email": email})
		return nil, apperr.ErrUnauthenticated
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if !errors.Is(err, security.ErrPasswordMismatch) {
			log.Printf("auth: compare password for user %s: %v", u.ID, err)
		}
		s.emit(u.ID, "login_failure", nil)
		return nil, apperr.ErrUnauthenticated
	}
	token, exp, err := s.tokens.IssueAccess(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	s.emit(u.ID, "login_success", nil)
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: u}, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, tenant ownership.Identity) (*userdomain.User, error) {
	u, err := s.users.GetByID(ctx, tenant.UserID)
	if err != nil {
		return nil, apperr.Dependency("load user", err)
	}
	if u == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return u, nil
}

// UpdateProfile changes the caller's display name and avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, tenant ownership.Identity, in ProfileInput) (*userdomain.User, error) {
	u, err := s.Me(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return nil, apperr.InvalidArgument("display name must not be empty")
		}
		u.DisplayName = name
	}
	if in.AvatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if err := u.Validate(); err != nil {
		return nil, apperr.InvalidArgument("%v", err)
	}
	u.UpdatedAt = s.now()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, apperr.Dependency("update user", err)
	}
	return u, nil
}

func (s *AuthService) emit(userID, eventType string, metadata any) {
	telemetry.EmitAsync(s.events, telemetrydomain.NewEvent(userID, eventType, eventSource, metadata))
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.InvalidArgument("email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperr.InvalidArgument("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return apperr.InvalidArgument("password must be %d to %d characters", MinPasswordLen, MaxPasswordLen)
	}
	return nil
}
