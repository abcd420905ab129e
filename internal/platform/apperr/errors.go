// Package apperr defines the error taxonomy shared by services and its mapping to gRPC status codes.
package apperr

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinel errors. Services wrap them with %w; handlers map them with ToStatus.
var (
	// ErrUnauthenticated means no caller identity could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound covers both missing entities and entities owned by another tenant.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a malformed sort, enum, page size, or field value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrVerificationFailed is a missing, expired, or mismatched verification code.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrConflict means an account already exists for the identity being registered.
	ErrConflict = errors.New("already exists")
	// ErrDependency wraps failures of collaborators (database, cache, mail).
	ErrDependency = errors.New("dependency failure")
)

// InvalidArgument returns an error wrapping ErrInvalidArgument with a formatted detail.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound returns an error wrapping ErrNotFound for the given kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// Dependency wraps err as a collaborator failure of op. Returns nil when err is nil.
// Errors that already belong to the taxonomy are returned unchanged.
func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrDependency, op, err)
}

// Classified reports whether err wraps one of the sentinel errors of this package.
func Classified(err error) bool {
	for _, target := range []error{
		ErrUnauthenticated, ErrNotFound, ErrInvalidArgument,
		ErrVerificationFailed, ErrConflict, ErrDependency,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ToStatus converts err into a gRPC status error. Unclassified errors become Internal
// without leaking their message.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "missing or invalid authorization")
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrVerificationFailed):
		return status.Error(codes.InvalidArgument, "invalid or expired verification code")
	case errors.Is(err, ErrConflict):
		return status.Error(codes.AlreadyExists, "account already exists")
	case errors.Is(err, ErrDependency):
		return status.Error(codes.Unavailable, "dependency unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
