package interceptors

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"taskboard/backend/internal/telemetry/domain"
)

type chanEmitter struct {
	events chan *domain.Event
}

func (c *chanEmitter) Emit(_ context.Context, e *domain.Event) error {
	c.events <- e
	return nil
}

func TestTelemetryUnary_EmitsEvent(t *testing.T) {
	em := &chanEmitter{events: make(chan *domain.Event, 1)}
	interceptor := TelemetryUnary(em, nil)
	ctx := WithUserID(context.Background(), "user-1")
	ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("x-forwarded-for", "10.0.0.1, 10.0.0.2"))

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "task t-1")
	}
	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: protectedMethod}, handler)
	if status.Code(err) != codes.NotFound {
		t.Fatalf("handler error should pass through, got %v", err)
	}

	select {
	case e := <-em.events:
		if e.UserID != "user-1" || e.EventType != "grpc_request" || e.Source != "grpc_interceptor" {
			t.Errorf("event = %+v", e)
		}
		var meta grpcRequestMetadata
		if err := json.Unmarshal(e.Metadata, &meta); err != nil {
			t.Fatalf("metadata: %v", err)
		}
		if meta.FullMethod != protectedMethod || meta.StatusCode != "NotFound" || meta.ClientIP != "10.0.0.1" {
			t.Errorf("metadata = %+v", meta)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event emitted")
	}
}

func TestTelemetryUnary_SkipAndNil(t *testing.T) {
	em := &chanEmitter{events: make(chan *domain.Event, 1)}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }

	resp, err := TelemetryUnary(em, map[string]bool{publicMethod: true})(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: publicMethod}, handler)
	if err != nil || resp != "ok" {
		t.Fatalf("resp = %v, err = %v", resp, err)
	}
	if _, err := TelemetryUnary(nil, nil)(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: publicMethod}, handler); err != nil {
		t.Fatalf("nil emitter: %v", err)
	}
	select {
	case e := <-em.events:
		t.Errorf("skipped method emitted %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClientIP(t *testing.T) {
	base := context.Background()
	withPeer := peer.NewContext(base, &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.7"), Port: 5555}})
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"forwarded", metadata.NewIncomingContext(base, metadata.Pairs("x-forwarded-for", "203.0.113.9")), "203.0.113.9"},
		{"real ip", metadata.NewIncomingContext(base, metadata.Pairs("x-real-ip", "203.0.113.10")), "203.0.113.10"},
		{"peer", withPeer, "192.0.2.7"},
		{"unknown", base, "unknown"},
	}
	for _, tc := range tests {
		if got := ClientIP(tc.ctx); got != tc.want {
			t.Errorf("%s: ClientIP = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAccessLogUnary_PassesThrough(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		calls++
		return "resp", wantErr
	}
	interceptor := AccessLogUnary(map[string]bool{"/grpc.health.v1.Health/Check": true})
	for _, method := range []string{protectedMethod, "/grpc.health.v1.Health/Check"} {
		resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: method}, handler)
		if resp != "resp" || !errors.Is(err, wantErr) {
			t.Errorf("%s: resp = %v, err = %v", method, resp, err)
		}
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}
