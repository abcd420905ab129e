// Package server assembles the gRPC server: interceptors, instrumentation and service registration.
package server

import (
	"context"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	taskboardv1 "taskboard/backend/api/taskboard/v1"
	healthhandler "taskboard/backend/internal/health/handler"
	identityhandler "taskboard/backend/internal/identity/handler"
	"taskboard/backend/internal/platform/ownership"
	projecthandler "taskboard/backend/internal/project/handler"
	"taskboard/backend/internal/server/interceptors"
	taskhandler "taskboard/backend/internal/task/handler"
	"taskboard/backend/internal/telemetry"
)

// IdentityResolver resolves the caller of an RPC. Implemented by *ownership.Guard.
type IdentityResolver interface {
	ResolveCurrentIdentity(ctx context.Context) (ownership.Identity, error)
}

// Deps holds the services behind the gRPC handlers.
type Deps struct {
	// Identity resolves the caller once per RPC for every handler that needs it.
	Identity IdentityResolver
	// Auth backs AuthService. If nil, auth RPCs return Unimplemented.
	Auth identityhandler.AuthService
	Projects projecthandler.ProjectService
	Tasks    taskhandler.TaskService
	// HealthPinger is used by the health service for readiness (e.g. *sql.DB). If nil, Check skips the DB ping.
	HealthPinger healthhandler.Pinger
	// HealthPolicyChecker is used by the health service (e.g. OPA evaluator). If nil, Check skips the policy check.
	HealthPolicyChecker healthhandler.PolicyChecker
}

const healthListMethod = "/grpc.health.v1.Health/List"

// PublicMethods are callable without a bearer token.
var PublicMethods = map[string]bool{
	taskboardv1.AuthService_SendCode_FullMethodName: true,
	taskboardv1.AuthService_Register_FullMethodName: true,
	taskboardv1.AuthService_Login_FullMethodName:    true,
	healthpb.Health_Check_FullMethodName:            true,
	healthpb.Health_Watch_FullMethodName:            true,
	healthListMethod:                                true,
}

// quietMethods are not access-logged or emitted as telemetry.
var quietMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
	healthpb.Health_Watch_FullMethodName: true,
	healthListMethod:                     true,
}

// Options configure NewGRPCServer.
type Options struct {
	// Tokens validates bearer tokens for the auth interceptor.
	Tokens interceptors.AccessValidator
	// Events receives one event per RPC. May be nil.
	Events telemetry.EventEmitter
	// DisableOTel skips the otelgrpc stats handler.
	DisableOTel bool
}

// NewGRPCServer returns a server with the access log, auth and telemetry interceptors chained
// in that order, plus the OpenTelemetry stats handler. Services are not registered.
func NewGRPCServer(opts Options, extra ...grpc.ServerOption) *grpc.Server {
	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptors.AccessLogUnary(quietMethods),
			interceptors.AuthUnary(opts.Tokens, PublicMethods),
			interceptors.TelemetryUnary(opts.Events, quietMethods),
		),
	}
	if !opts.DisableOTel {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	return grpc.NewServer(append(serverOpts, extra...)...)
}

// RegisterServices registers all gRPC services with the given server.
//
// Service → handler mapping:
//   - taskboard.v1.AuthService    → internal/identity/handler
//   - taskboard.v1.ProjectService → internal/project/handler
//   - taskboard.v1.TaskService    → internal/task/handler
//   - grpc.health.v1.Health       → internal/health/handler
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	taskboardv1.RegisterAuthServiceServer(s, identityhandler.NewAuthServer(deps.Identity, deps.Auth))
	taskboardv1.RegisterProjectServiceServer(s, projecthandler.NewServer(deps.Identity, deps.Projects))
	taskboardv1.RegisterTaskServiceServer(s, taskhandler.NewServer(deps.Identity, deps.Tasks))
	healthpb.RegisterHealthServer(s, healthhandler.NewServer(deps.HealthPinger, deps.HealthPolicyChecker))
}
