package main

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/sales-lab/internal/config"
	"github.com/JaimeStill/sales-lab/internal/infrastructure"
	"github.com/JaimeStill/sales-lab/pkg/lifecycle"
	"github.com/JaimeStill/sales-lab/pkg/logging"
	"github.com/JaimeStill/sales-lab/pkg/middleware"
	"github.com/JaimeStill/sales-lab/pkg/module"
	"github.com/JaimeStill/sales-lab/web/scalar"
)

func testRouter(t *testing.T) (*module.Router, *infrastructure.Infrastructure) {
	t.Helper()

	infra := &infrastructure.Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.Discard(),
	}
	t.Cleanup(func() { infra.Lifecycle.Shutdown(0) })

	metrics := middleware.NewMetrics("test")
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api " + r.URL.Path))
	})
	appHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("app " + r.URL.Path))
	})

	modules := &Modules{
		API:     module.New("/api", apiHandler),
		Scalar:  scalar.NewModule("/api/openapi.json"),
		App:     middleware.Chain(appHandler, metrics.Middleware("app")),
		Metrics: metrics,
	}

	router := buildRouter(infra, modules)
	modules.Mount(router)
	return router, infra
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Health(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(router, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_Readiness(t *testing.T) {
	router, infra := testRouter(t)

	rec := get(router, "/readyz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup = %d, want 503", rec.Code)
	}

	infra.Lifecycle.WaitForStartup()

	rec = get(router, "/readyz")
	if rec.Code != http.StatusOK || rec.Body.String() != "READY" {
		t.Errorf("readyz after startup = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_Dispatch(t *testing.T) {
	router, _ := testRouter(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "app /"},
		{"/sales", "app /sales"},
		{"/sales/", "app /sales"},
		{"/unknown/page", "app /unknown/page"},
		{"/api/getData", "api /getData"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(router, tt.path)
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRouter_Scalar(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(router, "/scalar")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/api/openapi.json") {
		t.Error("scalar page does not reference the spec URL")
	}
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := testRouter(t)

	get(router, "/sales")

	rec := get(router, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := `test_http_requests_total{code="200",method="GET",route="app"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("metrics missing %q", want)
	}
}

func TestHTTPServer_StartPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	cfg := &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            port,
		ShutdownTimeout: "1s",
	}

	lc := lifecycle.New()
	srv := newHTTPServer(cfg, http.NotFoundHandler(), logging.Discard())

	if err := srv.Start(lc); err == nil {
		t.Errorf("Start() on busy port %d succeeded", port)
	}
}
