package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/config"
	"github.com/devplatform/tracker/internal/graphql"
	"github.com/devplatform/tracker/internal/prometheus"
	"github.com/devplatform/tracker/internal/seed"
	"github.com/devplatform/tracker/internal/server"
	"github.com/devplatform/tracker/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting tracker service")

	// Initialize business-level Prometheus metrics
	logger.Info("Initializing Prometheus metrics")
	prometheus.Init()

	// Initialize store
	logger.WithField("path", cfg.DatabasePath).Info("Opening database")
	passwords := auth.NewPasswordHasher(cfg.BcryptCost)
	mgr, err := store.NewManager(cfg, passwords, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize store")
	}

	if err := mgr.HealthCheck(context.Background()); err != nil {
		logger.WithError(err).Warn("Initial database health check failed")
	}

	// Wrap store with metrics collector
	instrumented := prometheus.NewStoreCollector(mgr)
	if _, err := instrumented.GetStats(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to load initial entity counts")
	}

	// Apply bootstrap data
	if err := applySeed(cfg, instrumented, logger); err != nil {
		logger.WithError(err).Fatal("Failed to apply seed data")
	}

	// Initialize GraphQL schema
	logger.Info("Initializing GraphQL schema")
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiration)
	gqlSchema := graphql.NewSchema(instrumented, tokens, cfg, logger)

	// Setup HTTP server
	srv := server.New(cfg, server.NewHandler(cfg, gqlSchema, mgr, tokens, logger))

	// Start metrics server in background
	go server.StartMetricsServer(cfg, logger)

	// Start main server in background
	go func() {
		logger.WithField("port", cfg.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(srv, mgr, cfg, logger)
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func applySeed(cfg *config.Config, store seed.Store, logger *logrus.Logger) error {
	seeder := seed.NewSeeder(store, logger)
	ctx := context.Background()

	if cfg.SeedDemo {
		logger.Info("Applying demo data")
		if _, err := seeder.Apply(ctx, seed.DemoData()); err != nil {
			return err
		}
	}

	if cfg.SeedFile != "" {
		data, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		logger.WithField("file", cfg.SeedFile).Info("Applying seed file")
		if _, err := seeder.Apply(ctx, data); err != nil {
			return err
		}
	}

	return nil
}

func waitForShutdown(srv *http.Server, mgr *store.Manager, cfg *config.Config, logger *logrus.Logger) {
	// Create channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until signal received
	sig := <-quit
	logger.WithField("signal", sig.String()).Info("Shutdown signal received")

	timeout := 30 * time.Second
	if cfg.ShutdownTimeout > 0 {
		timeout = time.Duration(cfg.ShutdownTimeout) * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Closing database...")
	if err := mgr.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database")
	}

	logger.Info("Shutdown complete")
}
