package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/bentonit-ledger/pkg/config"
	"github.com/jhoicas/bentonit-ledger/pkg/migrate"
	"github.com/rs/zerolog"
)

// Store almacenamiento abierto según DB_DRIVER.
type Store struct {
	Tx     ledger.TxRunner
	Orders repository.OrderRepository
	close  func()
}

// Close libera las conexiones.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// OpenStore abre PostgreSQL (pool pgx + migraciones goose) o SQLite (gorm + AutoMigrate).
func OpenStore(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir sqlite: %w", err)
		}
		if cfg.AutoMigrate {
			if err := sqlite.AutoMigrate(ctx, db); err != nil {
				return nil, fmt.Errorf("migrar sqlite: %w", err)
			}
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacenamiento listo")
		return &Store{
			Tx:     sqlite.NewTxRunner(db),
			Orders: sqlite.NewOrderRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	default:
		if cfg.AutoMigrate {
			if err := migratePostgres(ctx, cfg, log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Msg("almacenamiento listo")
		return &Store{
			Tx:     postgres.NewTxRunner(pool),
			Orders: postgres.NewOrderRepository(pool),
			close:  pool.Close,
		}, nil
	}
}

func migratePostgres(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) error {
	db, err := sql.Open("pgx", postgres.StdlibDSN(cfg))
	if err != nil {
		return fmt.Errorf("abrir conexión de migración: %w", err)
	}
	defer db.Close()
	if err := migrate.Up(ctx, db, "postgres", postgres.Migrations, postgres.MigrationsDir); err != nil {
		return err
	}
	version, err := migrate.Version(db, "postgres")
	if err != nil {
		return err
	}
	log.Info().Int64("version", version).Msg("esquema migrado")
	return nil
}
