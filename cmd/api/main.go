package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
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

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting openloop-client API server",
		"env", cfg.Environment,
		"port", cfg.Port,
	)

	backendMetrics := metrics.NewBackendMetrics(nil)

	healthieClient := healthie.New(cfg, logger, healthie.WithMetrics(backendMetrics))
	openloopClient := openloop.New(cfg, logger, openloop.WithMetrics(backendMetrics))
	junctionClient := junction.New(cfg, logger, junction.WithMetrics(backendMetrics))

	f := facade.New(healthieClient, openloopClient, junctionClient, logger)

	s, err := schema.New(f)
	if err != nil {
		logger.Error("failed to build schema", "error", err)
		os.Exit(1)
	}

	r := api.NewRouter(&api.RouterConfig{
		GraphQL:        api.NewGraphQLHandler(s, logger),
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
