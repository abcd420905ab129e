package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestNewProviders_DisabledWithoutEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "   "} {
		p, err := NewProviders(context.Background(), Options{Endpoint: endpoint, ServiceName: "taskboard-test"})
		if err != nil {
			t.Fatalf("NewProviders(%q): %v", endpoint, err)
		}
		if p.TracerProvider == nil || p.MeterProvider == nil || p.LoggerProvider == nil {
			t.Fatalf("providers should be non-nil: %+v", p)
		}
		if err := p.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}
}

func TestNewProviders_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"http://", "http://[invalid"} {
		if _, err := NewProviders(context.Background(), Options{Endpoint: endpoint}); err == nil {
			t.Errorf("NewProviders(%q) should fail", endpoint)
		}
	}
}

func TestCollectorTarget(t *testing.T) {
	tests := []struct {
		endpoint string
		override bool
		target   string
		insecure bool
	}{
		{"localhost:4317", false, "localhost:4317", true},
		{"http://collector:4317/v1/traces", false, "collector:4317", true},
		{"https://collector:4317", false, "collector:4317", false},
		{"https://collector:4317", true, "collector:4317", true},
	}
	for _, tc := range tests {
		target, insecure, err := collectorTarget(tc.endpoint, tc.override)
		if err != nil {
			t.Fatalf("collectorTarget(%q): %v", tc.endpoint, err)
		}
		if target != tc.target || insecure != tc.insecure {
			t.Errorf("collectorTarget(%q, %v) = %q, %v; want %q, %v",
				tc.endpoint, tc.override, target, insecure, tc.target, tc.insecure)
		}
	}
}

func TestSetGlobal(t *testing.T) {
	p, err := NewProviders(context.Background(), Options{ServiceName: "taskboard-test"})
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	p.SetGlobal()

	if otel.GetTracerProvider() != p.TracerProvider {
		t.Error("global tracer provider not installed")
	}
	if otel.GetMeterProvider() != p.MeterProvider {
		t.Error("global meter provider not installed")
	}
}
