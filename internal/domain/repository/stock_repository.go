package repository

import (
	"context"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por producto+bodega.
// Usado dentro de transacciones para garantizar consistencia.
// Find y FindForUpdate devuelven found=false cuando no hay fila (ausencia = cantidad 0).
type StockRepository interface {
	Find(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error)
	// FindForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	FindForUpdate(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error)
	Upsert(ctx context.Context, entry entity.StockEntry) error
	Delete(ctx context.Context, productID, warehouseID string) error
	SumByProduct(ctx context.Context, productID string) (int64, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.StockEntry, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockEntry, error)
}
