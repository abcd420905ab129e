package interceptors

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// AccessLogUnary returns a unary server interceptor that logs one line per RPC with method, caller,
// status code, and latency. Methods in skipMethods (health probes) are not logged.
func AccessLogUnary(skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if skipMethods[info.FullMethod] {
			return resp, err
		}
		// The auth interceptor runs inside this one, so the user id is not visible here.
		log.Printf("grpc: method=%s code=%s ip=%s duration=%s",
			info.FullMethod, status.Code(err), ClientIP(ctx), time.Since(start).Round(time.Microsecond))
		return resp, err
	}
}
