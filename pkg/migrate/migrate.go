package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Run ejecuta un comando goose (up, down, status, ...) sobre db leyendo las migraciones de fsys/dir.
func Run(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db es obligatorio")
	}
	if dir == "" {
		return fmt.Errorf("dir es obligatorio")
	}
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up aplica todas las migraciones pendientes.
func Up(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, dir string) error {
	return Run(ctx, db, dialect, fsys, dir, "up")
}

// Version devuelve la versión actual del esquema.
func Version(db *sql.DB, dialect string) (int64, error) {
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("get db version: %w", err)
	}
	return v, nil
}
