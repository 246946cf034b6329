package postgres

import "embed"

// Migrations esquema del ledger en formato goose.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir directorio de Migrations.
const MigrationsDir = "migrations"
