package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/postgres"
)

// runMigrations executes the requested goose command against the embedded
// migration set. Supported commands are up, down and status.
func runMigrations(db *sql.DB, command string, logger *slog.Logger) error {
	goose.SetBaseFS(postgres.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Info("running migration command", "command", command)

	var err error
	switch command {
	case "up":
		err = goose.Up(db, postgres.MigrationsDir)
	case "down":
		err = goose.Down(db, postgres.MigrationsDir)
	case "status":
		err = goose.Status(db, postgres.MigrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down or status)", command)
	}

	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	logger.Info("migration command completed", "command", command)
	return nil
}
