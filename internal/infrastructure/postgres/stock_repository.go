package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, quantity, updated_at`

func (r *StockRepo) find(ctx context.Context, query, productID, warehouseID string) (entity.StockEntry, bool, error) {
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.StockEntry{ProductID: productID, WarehouseID: warehouseID}, false, nil
		}
		return entity.StockEntry{}, false, fmt.Errorf("get stock: %w", err)
	}
	return s, true, nil
}

// Find obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Find(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error) {
	return r.find(ctx, `SELECT `+stockColumns+` FROM stock WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID)
}

// FindForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) FindForUpdate(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error) {
	return r.find(ctx, `SELECT `+stockColumns+` FROM stock WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`,
		productID, warehouseID)
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, entry entity.StockEntry) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, entry.ProductID, entry.WarehouseID, entry.Quantity, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// Delete elimina la fila (cantidad 0).
func (r *StockRepo) Delete(ctx context.Context, productID, warehouseID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

// SumByProduct suma el stock del producto en todas las bodegas.
func (r *StockRepo) SumByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}

// ListByProduct filas de stock del producto ordenadas por bodega.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]entity.StockEntry, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM stock WHERE product_id = $1 ORDER BY warehouse_id`, productID)
}

// ListByWarehouse filas de stock de la bodega ordenadas por producto.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockEntry, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM stock WHERE warehouse_id = $1 ORDER BY product_id`, warehouseID)
}

func (r *StockRepo) list(ctx context.Context, query string, arg string) ([]entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
