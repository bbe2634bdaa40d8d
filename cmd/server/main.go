// Command server exposes the imported panel over HTTP: CRUD on monthly
// records, the analysis endpoints, health, and Prometheus metrics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"macrocli/internal/config"
	apierrors "macrocli/internal/errors"
	"macrocli/internal/infrastructure"
	"macrocli/internal/middleware"
	"macrocli/internal/services"
	"macrocli/internal/store"
	transporthttp "macrocli/internal/transport/http"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err, slog.String("path", cfg.Store.Path))
		return 1
	}
	defer st.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	errorHandler := apierrors.NewErrorHandler(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger).Handler)
	r.Use(metrics.Handler)

	r.Mount("/records", transporthttp.NewRecordsHandler(services.NewRecordService(st, logger), logger, errorHandler).Routes())
	r.Mount("/analysis", transporthttp.NewAnalysisHandler(services.NewAnalysisService(st, logger), logger, errorHandler).Routes())
	r.Get("/healthz", transporthttp.NewHealthHandler(st).Health)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("store", cfg.Store.Path),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return 1
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return 1
	}
	logger.Info("server stopped")
	return 0
}
