package otel

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"taskboard/backend/internal/telemetry/domain"
)

// recordCapture keeps the last record passed to Emit.
type recordCapture struct {
	rec   otellog.Record
	calls int
}

func (r *recordCapture) Emit(_ context.Context, rec otellog.Record) {
	r.rec = rec
	r.calls++
}

func attributes(rec otellog.Record) map[string]string {
	attrs := make(map[string]string)
	rec.WalkAttributes(func(kv otellog.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})
	return attrs
}

func TestNewEventEmitter_NilProvider(t *testing.T) {
	em := NewEventEmitter(nil)
	if err := em.Emit(context.Background(), domain.NewEvent("u1", "task_created", "task service", nil)); err != nil {
		t.Errorf("noop Emit: %v", err)
	}
}

func TestNewEventEmitter_WithProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()
	em := NewEventEmitter(provider)
	if err := em.Emit(context.Background(), nil); err != nil {
		t.Errorf("Emit(nil): %v", err)
	}
	if err := em.Emit(context.Background(), domain.NewEvent("u1", "login", "auth", nil)); err != nil {
		t.Errorf("Emit: %v", err)
	}
}

func TestEmit_Mapping(t *testing.T) {
	capture := &recordCapture{}
	em := NewEventEmitterWithLogger(capture)
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	event := &domain.Event{
		UserID:    "user-1",
		EventType: "task_updated",
		Source:    "task service",
		Metadata:  json.RawMessage(`{"taskId":"t-1"}`),
		CreatedAt: created,
	}
	if err := em.Emit(context.Background(), event); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	rec := capture.rec
	if !rec.Timestamp().Equal(created) {
		t.Errorf("timestamp = %v, want %v", rec.Timestamp(), created)
	}
	if got := string(rec.Body().AsBytes()); got != `{"taskId":"t-1"}` {
		t.Errorf("body = %q", got)
	}
	want := map[string]string{"user_id": "user-1", "event_type": "task_updated", "source": "task service"}
	got := attributes(rec)
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attr %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestEmit_SparseEvent(t *testing.T) {
	capture := &recordCapture{}
	em := NewEventEmitterWithLogger(capture)

	before := time.Now().UTC()
	if err := em.Emit(context.Background(), &domain.Event{EventType: "verification_code_sent"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	rec := capture.rec
	if !rec.Body().Empty() {
		t.Error("body should be empty without metadata")
	}
	if rec.Timestamp().Before(before) {
		t.Errorf("zero CreatedAt should be replaced with now, got %v", rec.Timestamp())
	}
	attrs := attributes(rec)
	if len(attrs) != 1 || attrs["event_type"] != "verification_code_sent" {
		t.Errorf("attributes = %v, want only event_type", attrs)
	}
}

func TestEmit_NilEventSkipsLogger(t *testing.T) {
	capture := &recordCapture{}
	if err := NewEventEmitterWithLogger(capture).Emit(context.Background(), nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if capture.calls != 0 {
		t.Errorf("logger called %d times for nil event", capture.calls)
	}
}
