package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jyotish/backend/internal/config"
	"jyotish/backend/internal/db"
	"jyotish/backend/internal/ephemeris"
	"jyotish/backend/internal/handler"
	gh "jyotish/backend/internal/http"
	"jyotish/backend/internal/repository"
	"jyotish/backend/internal/scheduler"
	"jyotish/backend/internal/service"
	"jyotish/backend/pkg/logger"
	"jyotish/backend/pkg/snowflake"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.SnowflakeNode); err != nil {
		logger.Error("init snowflake", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	credentialRepo := repository.NewCredentialRepository(database)
	usageRepo := repository.NewUsageRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)

	engine := ephemeris.NewClient(cfg.EphemerisURL, nil)

	credentialService := service.NewCredentialService(credentialRepo, usageRepo)
	rateLimitService := service.NewRateLimitService(usageRepo, cfg.LedgerTimeout)
	accessService := service.NewAccessService(credentialService, rateLimitService)
	chartService := service.NewChartService(engine)
	authService := service.NewAuthService(settingsRepo)

	e := gh.NewRouter(
		handler.NewChartHandler(chartService),
		handler.NewCredentialHandler(credentialService),
		handler.NewAuthHandler(authService),
		authService,
		accessService,
		cfg.EnableSwagger,
	)

	retention := scheduler.New(usageRepo, cfg.RetentionInterval, cfg.RetentionMargin)
	retention.Start()

	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	retention.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
