package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/bentonit-ledger/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder_Placeholders(t *testing.T) {
	var w whereBuilder
	w.add("product_id = $%d", "p-1")
	w.add("(from_warehouse_id = $%[1]d OR to_warehouse_id = $%[1]d)", "w-1")

	query := "SELECT 1 FROM t" + w.sql() + w.page(0, -3)
	assert.Equal(t,
		"SELECT 1 FROM t WHERE product_id = $1 AND (from_warehouse_id = $2 OR to_warehouse_id = $2) LIMIT $3 OFFSET $4",
		query)
	assert.Equal(t, []any{"p-1", "w-1", 50, 0}, w.args)
}

func TestWhereBuilder_SinCondiciones(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())
	assert.Equal(t, " LIMIT $1 OFFSET $2", w.page(10, 20))
}

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(errors.New("otro")))
}

func TestStdlibDSN_AgregaApplicationName(t *testing.T) {
	dsn := StdlibDSN(config.DBConfig{DatabaseURL: "postgres://u:p@db:5432/ledger?sslmode=disable"})
	assert.Contains(t, dsn, "application_name=bentonit-ledger-migrate")
	assert.Contains(t, dsn, "sslmode=disable")
}
