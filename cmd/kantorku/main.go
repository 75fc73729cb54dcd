// kantorku backend - small office services
//
// This is the main entry point for the kantorku backend. It serves the
// authentication endpoints, the canteen menu catalogue, user
// administration, the attendance log, and the audit trail over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/arifwid/kantorku/migrations"

	"github.com/arifwid/kantorku/internal/api"
	"github.com/arifwid/kantorku/internal/attendance"
	"github.com/arifwid/kantorku/internal/audit"
	"github.com/arifwid/kantorku/internal/auth"
	"github.com/arifwid/kantorku/internal/infrastructure/config"
	"github.com/arifwid/kantorku/internal/infrastructure/database"
	"github.com/arifwid/kantorku/internal/infrastructure/logging"
	"github.com/arifwid/kantorku/internal/menu"
	"github.com/arifwid/kantorku/internal/metrics"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting kantorku backend", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	if cfg.UsingDevSecret() {
		log.Warn("using the built-in development JWT secret; set KANTORKU_JWT_SECRET in production")
	}

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Wire repositories and services
	identities := auth.NewIdentityRepository(db.DB)
	tokens := auth.NewTokens(cfg.Security.JWT.Secret, cfg.TokenTTL())
	authSvc := auth.NewService(identities, tokens, cfg.Security.Password.BcryptCost, log)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	server, err := api.New(api.Deps{
		Config:     cfg,
		Logger:     log,
		Auth:       authSvc,
		Identities: identities,
		Menu:       menu.NewRepository(db.DB),
		Attendance: attendance.NewRepository(db.DB),
		Audit:      audit.NewSQLiteRepository(db.DB),
		Metrics:    collector,
		Gatherer:   registry,
		DB:         db,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses KANTORKU_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("KANTORKU_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
