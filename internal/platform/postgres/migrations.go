package postgres

import (
	"embed"
)

// Migrations holds the embedded SQL migration files so the server binary can
// apply them with goose without shipping the files separately.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migration files inside Migrations.
const MigrationsDir = "migrations"
