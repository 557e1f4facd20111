// Package main implements the entry point for the Fahrvergleich API server,
// the backend of the driving-school price comparison marketplace.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/fahrvergleich/fahrvergleich-api/internal/config"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, wires dependencies and starts the HTTP server.
// When migrateCmd is set it runs the requested migration command and returns
// without starting the server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				appLogger.Error("error closing database connection", "error", closeErr)
			}
		}()
		return runMigrations(db, migrateCmd, appLogger)
	}

	// The server always runs against an up-to-date schema.
	if err := runMigrations(db, "up", appLogger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
