package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/config"
	"github.com/spec-kit/doctor-portal/internal/observability"
	"github.com/spec-kit/doctor-portal/internal/persistence"
	"github.com/spec-kit/doctor-portal/internal/repository"
	"github.com/spec-kit/doctor-portal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("POSTGRES_DSN is required; the in-memory store is seeded by the api on startup")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(pg.PoolHandle())
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Accounts: repos.Accounts,
		Doctors:  repos.Doctors,
		Patients: repos.Patients,
		Codec:    auth.NewJWTCodec(cfg.Auth.SessionSecret, cfg.App.Name, cfg.Auth.SessionTTL()),
	})

	if err := authService.SeedDemo(ctx); err != nil {
		logger.Fatal("failed to seed demo accounts", zap.Error(err))
	}
	logger.Info("seed completed",
		zap.String("doctor", service.DemoDoctorEmail),
		zap.String("patient", service.DemoPatientEmail))
}
