package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openloophealth/openloop-client-go/internal/api"
	"github.com/openloophealth/openloop-client-go/internal/config"
	"github.com/openloophealth/openloop-client-go/internal/facade"
	"github.com/openloophealth/openloop-client-go/internal/healthie"
	"github.com/openloophealth/openloop-client-go/internal/junction"
	"github.com/openloophealth/openloop-client-go/internal/observability/metrics"
	"github.com/openloophealth/openloop-client-go/internal/openloop"
	"github.com/openloophealth/openloop-client-go/internal/schema"
	"github.com/openloophealth/openloop-client-go/pkg/logging"
)

// Builds the full server wiring the way main does and exercises the
// mounted endpoints, with an isolated metrics registry.
func TestServerWiring(t *testing.T) {
	t.Setenv("OPENLOOP_ENV", "staging")
	t.Setenv("HEALTHIE_API_KEY", "test-key")
	t.Setenv("VITAL_API_KEY", "test-vital-key")

	cfg := config.Load()
	if cfg.Environment != config.Staging {
		t.Fatalf("environment = %q, want staging", cfg.Environment)
	}

	logger := logging.New(cfg.LogLevel)
	reg := prometheus.NewRegistry()
	backendMetrics := metrics.NewBackendMetrics(reg)

	f := facade.New(
		healthie.New(cfg, logger, healthie.WithMetrics(backendMetrics)),
		openloop.New(cfg, logger, openloop.WithMetrics(backendMetrics)),
		junction.New(cfg, logger, junction.WithMetrics(backendMetrics)),
		logger,
	)
	s, err := schema.New(f)
	if err != nil {
		t.Fatalf("schema build failed: %v", err)
	}

	router := api.NewRouter(&api.RouterConfig{
		GraphQL:        api.NewGraphQLHandler(s, logger),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz status = %d, want 200", rec.Code)
	}

	backendMetrics.ObserveRequest("healthie", "GetPatient", "ok")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "openloop_backend_requests_total") {
		t.Fatalf("metrics output missing backend request counter:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("not json {")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("/graphql bad-body status = %d, want 400", rec.Code)
	}
}
