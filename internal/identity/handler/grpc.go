// Package handler exposes registration, login and the caller's profile over gRPC.
package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	taskboardv1 "taskboard/backend/api/taskboard/v1"
	"taskboard/backend/internal/identity/service"
	"taskboard/backend/internal/platform/apperr"
	"taskboard/backend/internal/platform/ownership"
	userdomain "taskboard/backend/internal/user/domain"
)

// IdentityResolver resolves the caller placed in the context by the auth interceptor.
type IdentityResolver interface {
	ResolveCurrentIdentity(ctx context.Context) (ownership.Identity, error)
}

// AuthService is the account service used by AuthServer.
type AuthService interface {
	SendCode(ctx context.Context, email string) error
	Register(ctx context.Context, email, password, code string) (*userdomain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Me(ctx context.Context, tenant ownership.Identity) (*userdomain.User, error)
	UpdateProfile(ctx context.Context, tenant ownership.Identity, in service.ProfileInput) (*userdomain.User, error)
}

// AuthServer implements taskboardv1.AuthServiceServer.
// SendCode, Register and Login are public; GetMe and UpdateMe require a bearer token.
type AuthServer struct {
	taskboardv1.UnimplementedAuthServiceServer
	identity IdentityResolver
	auth     AuthService
}

// NewAuthServer returns a new Auth gRPC server. auth may be nil; then all RPCs return Unimplemented.
func NewAuthServer(identity IdentityResolver, auth AuthService) *AuthServer {
	return &AuthServer{identity: identity, auth: auth}
}

// SendCode mails a registration code to the given address.
func (s *AuthServer) SendCode(ctx context.Context, req *taskboardv1.SendCodeRequest) (*taskboardv1.SendCodeResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method SendCode not implemented")
	}
	if err := s.auth.SendCode(ctx, req.Email); err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.SendCodeResponse{}, nil
}

// Register creates an account from a valid code.
func (s *AuthServer) Register(ctx context.Context, req *taskboardv1.RegisterRequest) (*taskboardv1.RegisterResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method Register not implemented")
	}
	u, err := s.auth.Register(ctx, req.Email, req.Password, req.Code)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.RegisterResponse{User: userToWire(u)}, nil
}

// Login returns an access token for valid credentials.
func (s *AuthServer) Login(ctx context.Context, req *taskboardv1.LoginRequest) (*taskboardv1.LoginResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method Login not implemented")
	}
	res, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.LoginResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		User:        userToWire(res.User),
	}, nil
}

func (s *AuthServer) GetMe(ctx context.Context, req *taskboardv1.GetMeRequest) (*taskboardv1.GetMeResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method GetMe not implemented")
	}
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	u, err := s.auth.Me(ctx, tenant)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.GetMeResponse{User: userToWire(u)}, nil
}

func (s *AuthServer) UpdateMe(ctx context.Context, req *taskboardv1.UpdateMeRequest) (*taskboardv1.UpdateMeResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method UpdateMe not implemented")
	}
	tenant, err := s.identity.ResolveCurrentIdentity(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	u, err := s.auth.UpdateProfile(ctx, tenant, service.ProfileInput{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &taskboardv1.UpdateMeResponse{User: userToWire(u)}, nil
}

func userToWire(u *userdomain.User) *taskboardv1.User {
	if u == nil {
		return nil
	}
	return &taskboardv1.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
