package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tasklist/internal/config"
	"tasklist/internal/handlers"
	"tasklist/internal/logging"
	"tasklist/internal/metrics"
	"tasklist/internal/store"
	"tasklist/internal/tasks"
	"tasklist/internal/web"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without storage the manager runs in degraded, memory only mode
	slots := openSlots(cfg, logger)
	if slots != nil {
		defer slots.Close()
	}

	m := tasks.New(ctx, slots, tasks.Options{SlotKey: cfg.SlotKey, Logger: logger})

	tmpl, err := web.ParseTemplates()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mt := metrics.MustNewMetrics(reg)
	mt.ObserveView(m.Render())

	h := handlers.New(m, tmpl, logger, mt)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	h.Routes(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", "http://localhost"+cfg.Addr(), "storage", cfg.Storage)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func openSlots(cfg config.Config, logger *slog.Logger) store.Slots {
	if cfg.Storage == store.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			logger.Warn("failed to create data directory", "path", cfg.DBPath, "error", err)
			return nil
		}
	}

	slots, err := store.Open(cfg.Storage, cfg.DBPath)
	if err != nil {
		logger.Warn("failed to open storage", "storage", cfg.Storage, "error", err)
		return nil
	}
	return slots
}
