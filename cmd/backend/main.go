// Package main provides the entry point for the LinkHub directory service.
//
//	@title			LinkHub Directory API
//	@version		1.0.0
//	@description	A link-sharing directory: categories, platforms, link submissions, reports and an admin panel.
//
//	@contact.name	LinkHub Support
//	@contact.email	support@linkhub.app
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/database"
	"LinkHub-Backend/internal/gate"
	httpHandler "LinkHub-Backend/internal/handler/http"
	"LinkHub-Backend/internal/repository/postgres"
	"LinkHub-Backend/internal/service"
	"LinkHub-Backend/pkg/logger"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting LinkHub directory service", zap.String("env", cfg.Env))

	// Error reporting (выключено при пустом DSN)
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Env,
		}); err != nil {
			log.Warn("failed to initialize sentry", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Seed initial data if enabled
	if cfg.Database.SeedData {
		log.Info("seeding database with initial data (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	} else {
		log.Info("skipping database seeding (seed_data: false)")
	}

	// Initialize storage and services
	storage := postgres.New(db, log)
	linkService := service.NewLinkService(storage)
	reportService := service.NewReportService(storage)
	adminService := service.NewAdminService(storage)

	// First-click gate
	clickGate, err := gate.New(&cfg.Gate, log)
	if err != nil {
		log.Fatal("failed to initialize click gate", zap.Error(err))
	}

	// JWT service for authentication
	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:            []byte(cfg.Auth.JWTSecret),
		AccessTokenDuration:  mustParseDuration(log, "access_token_duration", cfg.Auth.AccessTokenDuration),
		RefreshTokenDuration: mustParseDuration(log, "refresh_token_duration", cfg.Auth.RefreshTokenDuration),
		Issuer:               cfg.Auth.Issuer,
	})
	passwordService := auth.NewPasswordService()

	// Create HTTP server
	apiServer := httpHandler.NewServer(
		storage,
		linkService,
		reportService,
		adminService,
		clickGate,
		jwtService,
		passwordService,
		&cfg.Listing,
		log,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:      apiServer.SetupRoutes(),
		ReadTimeout:  mustParseDuration(log, "read_timeout", cfg.HTTPServer.ReadTimeout),
		WriteTimeout: mustParseDuration(log, "write_timeout", cfg.HTTPServer.WriteTimeout),
		IdleTimeout:  mustParseDuration(log, "idle_timeout", cfg.HTTPServer.IdleTimeout),
	}

	log.Info("starting HTTP server", zap.String("address", httpServer.Addr))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down LinkHub service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}

func mustParseDuration(log *zap.Logger, name, raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatal("invalid duration in config", zap.String("name", name), zap.String("value", raw))
	}
	return d
}
