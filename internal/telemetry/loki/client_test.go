package loki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func captureServer(t *testing.T, status int) (*httptest.Server, *PushRequest) {
	t.Helper()
	got := &PushRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestClient_PushEventJSON(t *testing.T) {
	srv, got := captureServer(t, http.StatusNoContent)
	c := NewClient(srv.URL + "/")

	created := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	raw := []byte(`{"userId":"u1","eventType":"grpc_request","source":"grpc interceptor","createdAt":"` + created.Format(time.RFC3339Nano) + `"}`)
	if err := c.PushEventJSON(context.Background(), raw); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}

	if len(got.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(got.Streams))
	}
	s := got.Streams[0]
	if s.Stream["job"] != "taskboard" || s.Stream["event_type"] != "grpc_request" {
		t.Errorf("labels = %v", s.Stream)
	}
	if s.Stream["source"] != "grpc_interceptor" {
		t.Errorf("source label should be sanitized, got %q", s.Stream["source"])
	}
	if _, ok := s.Stream["user_id"]; ok {
		t.Error("user id must not become a label")
	}
	if s.Values[0][0] != strconv.FormatInt(created.UnixNano(), 10) {
		t.Errorf("timestamp = %s", s.Values[0][0])
	}
	if s.Values[0][1] != string(raw) {
		t.Error("line should be the raw event JSON")
	}
}

func TestClient_PushEventJSON_InvalidJSON(t *testing.T) {
	srv, got := captureServer(t, http.StatusNoContent)
	c := NewClient(srv.URL)

	if err := c.PushEventJSON(context.Background(), []byte("not json")); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	if len(got.Streams[0].Stream) != 1 {
		t.Errorf("labels = %v, want only job", got.Streams[0].Stream)
	}
}

func TestClient_Push_Errors(t *testing.T) {
	srv, _ := captureServer(t, http.StatusBadRequest)
	if err := NewClient(srv.URL).Push(context.Background(), time.Now(), "x", nil); err == nil {
		t.Error("non-2xx should be an error")
	}
	if err := NewClient("").Push(context.Background(), time.Now(), "x", nil); err == nil {
		t.Error("empty base URL should be an error")
	}
}
