package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"taskboard/backend/internal/security"
)

const (
	publicMethod    = "/taskboard.v1.AuthService/Login"
	protectedMethod = "/taskboard.v1.TaskService/SearchTasks"
)

// capturedUser records the user id the handler saw.
func capturedUser(got *string) grpc.UnaryHandler {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		*got, _ = GetUserID(ctx)
		return "ok", nil
	}
}

func withBearer(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

func newInterceptor(t *testing.T) (grpc.UnaryServerInterceptor, *security.TokenProvider) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	return AuthUnary(tokens, map[string]bool{publicMethod: true}), tokens
}

func TestAuthUnary_ValidToken(t *testing.T) {
	interceptor, tokens := newInterceptor(t)
	token, _, err := tokens.IssueAccess("user-1", "ada@example.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	var got string
	resp, err := interceptor(withBearer(token), nil, &grpc.UnaryServerInfo{FullMethod: protectedMethod}, capturedUser(&got))
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "ok" || got != "user-1" {
		t.Errorf("resp = %v, user = %q", resp, got)
	}
}

func TestAuthUnary_ProtectedRejects(t *testing.T) {
	interceptor, _ := newInterceptor(t)
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", context.Background()},
		{"no header", metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-other", "1"))},
		{"wrong scheme", metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic abc"))},
		{"invalid token", withBearer("not-a-jwt")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				called = true
				return nil, nil
			}
			_, err := interceptor(tc.ctx, nil, &grpc.UnaryServerInfo{FullMethod: protectedMethod}, handler)
			if status.Code(err) != codes.Unauthenticated {
				t.Errorf("code = %v, want Unauthenticated", status.Code(err))
			}
			if called {
				t.Error("handler must not run")
			}
		})
	}
}

func TestAuthUnary_PublicMethod(t *testing.T) {
	interceptor, tokens := newInterceptor(t)

	var got string
	if _, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: publicMethod}, capturedUser(&got)); err != nil {
		t.Fatalf("public without token: %v", err)
	}
	if got != "" {
		t.Errorf("user = %q, want none", got)
	}

	if _, err := interceptor(withBearer("garbage"), nil, &grpc.UnaryServerInfo{FullMethod: publicMethod}, capturedUser(&got)); err != nil {
		t.Fatalf("public with bad token: %v", err)
	}

	token, _, _ := tokens.IssueAccess("user-2", "bo@example.com")
	if _, err := interceptor(withBearer(token), nil, &grpc.UnaryServerInfo{FullMethod: publicMethod}, capturedUser(&got)); err != nil {
		t.Fatalf("public with token: %v", err)
	}
	if got != "user-2" {
		t.Errorf("user = %q, want user-2", got)
	}
}

func TestExtractBearer_CaseInsensitiveScheme(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "  bEaReR   tok  "))
	if got := extractBearer(ctx); got != "tok" {
		t.Errorf("extractBearer = %q, want tok", got)
	}
}
