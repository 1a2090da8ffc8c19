package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/doctor-portal/internal/api/http"
	"github.com/spec-kit/doctor-portal/internal/cache"
	"github.com/spec-kit/doctor-portal/internal/config"
	"github.com/spec-kit/doctor-portal/internal/events"
	"github.com/spec-kit/doctor-portal/internal/llm"
	"github.com/spec-kit/doctor-portal/internal/observability"
	"github.com/spec-kit/doctor-portal/internal/persistence"
	"github.com/spec-kit/doctor-portal/internal/repository"
	"github.com/spec-kit/doctor-portal/internal/service"
	"github.com/spec-kit/doctor-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := repository.NewRepositories(pg.PoolHandle())
	summaryCache := cache.NewSummaryCache(redis.Client, cfg.Redis.SummaryTTL())

	var assistant llm.Client = llm.NewTemplateClient()
	if client := llm.NewOpenAIClient(cfg.LLM); client != nil {
		assistant = client
		logger.Info("llm client configured", zap.String("model", client.Model()))
	} else {
		logger.Info("LLM_API_KEY not provided; using template assistant")
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification), logger)

	server := httptransport.NewServer(httptransport.ServerDependencies{
		Config:     cfg,
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
		Repos:      repos,
		Postgres:   pg,
		Redis:      redis,
		Cache:      summaryCache,
		LLM:        assistant,
		Dispatcher: dispatcher,
	})

	// The in-memory store starts empty, so it always gets the demo accounts.
	if cfg.Auth.SeedDemo || !pg.Enabled() {
		if err := server.Auth.SeedDemo(ctx); err != nil {
			logger.Fatal("failed to seed demo accounts", zap.Error(err))
		}
		logger.Info("demo accounts ready",
			zap.String("doctor", service.DemoDoctorEmail),
			zap.String("patient", service.DemoPatientEmail))
	}

	go func() {
		if err := server.App.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := server.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
