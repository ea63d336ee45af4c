package postgres

import "embed"

// Migrations holds the schema for the credit store. Apply it with
// pkg/postgres.RunMigrations(dsn, Migrations, MigrationsDir).
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
