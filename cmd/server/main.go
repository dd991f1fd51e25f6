// Command server starts the Resume Insight HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ai "github.com/fairyhunter13/resume-insight/internal/adapter/ai"
	httpserver "github.com/fairyhunter13/resume-insight/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-insight/internal/adapter/observability"
	"github.com/fairyhunter13/resume-insight/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/resume-insight/internal/analyzer"
	"github.com/fairyhunter13/resume-insight/internal/app"
	"github.com/fairyhunter13/resume-insight/internal/config"
	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, analysis and AI review instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewAnalysisRepo(pool)

	// AI reviewer is optional; without an API key analyses carry the
	// heuristic score alone.
	var reviewer domain.Reviewer
	if cfg.ReviewEnabled() {
		reviewer = ai.New(cfg)
		slog.Info("ai review enabled", slog.String("model", cfg.AIModel))
	} else {
		slog.Info("ai review disabled; AI_API_KEY not set")
	}

	core := analyzer.New(dictionary.Load())

	analyzeSvc := usecase.NewAnalyzeService(core, repo, reviewer)
	resultSvc := usecase.NewResultService(repo)

	dbCheck := func(ctx context.Context) error { return pool.Ping(ctx) }

	srv := httpserver.NewServer(cfg, analyzeSvc, resultSvc, dbCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
