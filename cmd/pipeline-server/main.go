package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dagger.io/dagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/pipelines/internal/config"
	"github.com/your-org/pipelines/internal/gitinfo"
	"github.com/your-org/pipelines/pkg/action"
	"github.com/your-org/pipelines/pkg/api"
	"github.com/your-org/pipelines/pkg/engine"
	"github.com/your-org/pipelines/pkg/pipeline"
	"github.com/your-org/pipelines/pkg/schedule"
)

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	// Load configuration first so the log level applies everywhere
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	ctx := context.Background()

	// Connect to Dagger
	logger.Info("connecting to dagger")
	dag, err := dagger.Connect(ctx, dagger.WithLogOutput(os.Stderr))
	if err != nil {
		logger.Error("failed to connect to dagger", "error", err)
		os.Exit(1)
	}
	defer dag.Close()

	// Optional source metadata for run records
	pipelineCfg := &pipeline.Config{
		ExecTimeout: cfg.ExecTimeout,
	}
	if cfg.RepoPath != "" {
		git, err := gitinfo.NewResolver(cfg.RepoPath)
		if err != nil {
			logger.Error("failed to initialize git metadata", "error", err)
			os.Exit(1)
		}
		pipelineCfg.Git = git
	}

	logger.Info("pipeline server configuration",
		"listen_addr", cfg.ListenAddr,
		"exec_timeout", cfg.ExecTimeout,
		"check_schedule", cfg.CheckSchedule,
		"repo_path", cfg.RepoPath)

	p, err := pipeline.New(engine.New(dag), pipelineCfg, logger)
	if err != nil {
		logger.Error("failed to create pipeline", "error", err)
		os.Exit(1)
	}

	// Periodic checks, if configured
	schedCtx, cancelSched := context.WithCancel(ctx)
	defer cancelSched()
	if cfg.CheckSchedule != "" {
		sched := schedule.NewScheduler(p, logger)
		actions, err := p.Registry().List()
		if err != nil {
			logger.Error("failed to list actions", "error", err)
			os.Exit(1)
		}
		for _, def := range actions {
			if def.Kind != action.KindCheck {
				continue
			}
			if err := sched.Add(def.RegisteredName(), cfg.CheckSchedule); err != nil {
				logger.Error("failed to schedule check", "action", def.RegisteredName(), "error", err)
				os.Exit(1)
			}
		}
		go sched.Start(schedCtx)
	}

	// Create API handlers
	handlers := api.NewHandlers(p, logger)

	// Set up routes
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Create server
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	// Start server
	go func() {
		logger.Info("starting pipeline server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	cancelSched()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
