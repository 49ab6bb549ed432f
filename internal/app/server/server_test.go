package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"hrimport/internal/importer"
	"hrimport/internal/platform/config"
	"hrimport/internal/platform/metrics"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type noopRunner struct{}

func (noopRunner) Run(context.Context) (importer.Summary, error) { return importer.Summary{}, nil }

func newApp(ping error, metricsEnabled bool) *App {
	cfg := config.Config{JWTSecret: "s", MetricsEnabled: metricsEnabled, Addr: ":0"}
	return New(cfg, pingFunc(func(context.Context) error { return ping }), noopRunner{}, nil, zap.NewNop())
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(newApp(nil, false).Router, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestReadyz(t *testing.T) {
	if rec := get(newApp(nil, false).Router, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
	if rec := get(newApp(errors.New("down"), false).Router, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMetricsEndpointToggle(t *testing.T) {
	metrics.Default().AddRows("payroll", 1)

	if rec := get(newApp(nil, true).Router, "/metrics"); rec.Code != http.StatusOK {
		t.Fatalf("expected metrics, got %d", rec.Code)
	}
	if rec := get(newApp(nil, false).Router, "/metrics"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected metrics disabled, got %d", rec.Code)
	}
}

func TestImportsRequireAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	newApp(nil, false).Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newApp(nil, false).ListenAndServe(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}
