// Package db embeds the SQL migrations for every supported driver.
package db

import "embed"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

const (
	SQLiteMigrations   = "migrations/sqlite"
	PostgresMigrations = "migrations/postgres"
)
