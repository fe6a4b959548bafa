// Package main is the entry point for the auth service.
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

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/config"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/database"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/handlers"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/logging"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/metrics"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/middleware"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/repository"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/routes"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/service"
	"github.com/felipefaria2026/roleta-pro-ia-v2/pkg/redis"
	"github.com/felipefaria2026/roleta-pro-ia-v2/pkg/secretbox"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title Roleta Pro Auth API
// @version 1.0
// @description Account registration, login and identity resolution
// @host localhost:8084
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		slog.Error("auth service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.Environment)
	slog.SetDefault(logger)

	if err := checkDataKey(cfg); err != nil {
		return err
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if cfg.RunMigrations {
		if err := database.Migrate(context.Background(), db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	healthChecks := []handlers.HealthCheck{{Name: "database", Check: database.Ping(db)}}

	// Token revocation is opt-in; without it logout is stateless.
	var revoker service.TokenRevoker = service.NoopRevoker{}
	if cfg.TokenRevocationEnabled {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		revoker = service.NewRedisRevoker(redisClient)
		healthChecks = append(healthChecks, handlers.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	subsRepo := repository.NewSubscriptionRepository(db)

	// Initialize services
	metricsCollector := metrics.New()
	hasher, err := service.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	hasher = metricsCollector.InstrumentHasher(hasher)

	jwtService, err := service.NewJWTService(service.JWTConfig{
		Secret:       cfg.JWTSecret,
		Algorithm:    cfg.JWTAlgorithm,
		AccessExpiry: cfg.JWTAccessExpiry,
	})
	if err != nil {
		return err
	}

	adminPolicy := service.EmailAdminPolicy{AdminEmail: cfg.AdminEmail}
	resolver := service.NewIdentityResolver(jwtService, userRepo, subsRepo, adminPolicy, revoker, logger)
	authService := service.NewAuthService(userRepo, hasher, jwtService, revoker, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, metricsCollector, logger)
	healthHandler := handlers.NewHealthHandler(healthChecks...)

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Setup routes
	routes.Setup(router, authHandler, healthHandler, resolver, metricsCollector)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// checkDataKey fails startup when the data key cannot seal and open a value.
func checkDataKey(cfg *config.Config) error {
	key, err := cfg.DataKey()
	if err != nil {
		return err
	}
	box, err := secretbox.New(key)
	if err != nil {
		return err
	}
	sealed, err := box.Encrypt([]byte("probe"))
	if err != nil {
		return fmt.Errorf("data key self-check: %w", err)
	}
	if _, err := box.Decrypt(sealed); err != nil {
		return fmt.Errorf("data key self-check: %w", err)
	}
	return nil
}
