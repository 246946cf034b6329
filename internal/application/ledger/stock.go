package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// StockLedger mantiene las cantidades por (producto, bodega) sobre un StockRepository.
// La ausencia de fila significa cantidad 0: nunca se persiste una fila en cero.
type StockLedger struct {
	repo repository.StockRepository
	now  func() time.Time
}

// NewStockLedger construye el ledger de stock. Pasar el repositorio de la tx en curso.
func NewStockLedger(repo repository.StockRepository) *StockLedger {
	return &StockLedger{repo: repo, now: time.Now}
}

// Quantity devuelve la cantidad del producto en la bodega (0 si no hay fila).
func (s *StockLedger) Quantity(ctx context.Context, productID, warehouseID string) (int64, error) {
	entry, found, err := s.repo.Find(ctx, productID, warehouseID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return entry.Quantity, nil
}

// Add suma delta a la cantidad. Crea la fila si no existe y delta > 0.
// Falla con ErrInvalidQuantity si el resultado sería negativo; un resultado de 0 elimina la fila.
func (s *StockLedger) Add(ctx context.Context, productID, warehouseID string, delta int64) error {
	if delta == 0 {
		return nil
	}
	entry, found, err := s.repo.FindForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	var current int64
	if found {
		current = entry.Quantity
	}
	next := current + delta
	switch {
	case next < 0:
		return domain.ErrInvalidQuantity
	case next == 0:
		if found {
			return s.repo.Delete(ctx, productID, warehouseID)
		}
		return nil
	}
	return s.repo.Upsert(ctx, entity.StockEntry{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    next,
		UpdatedAt:   s.now(),
	})
}

// Remove descuenta amount (> 0). Si la cantidad actual no alcanza retorna *InsufficientStockError
// sin tocar la fila; al agotarse exactamente la fila se elimina.
func (s *StockLedger) Remove(ctx context.Context, productID, warehouseID string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	entry, found, err := s.repo.FindForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	var available int64
	if found {
		available = entry.Quantity
	}
	if available < amount {
		return &domain.InsufficientStockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Requested:   amount,
			Available:   available,
		}
	}
	if available == amount {
		return s.repo.Delete(ctx, productID, warehouseID)
	}
	return s.repo.Upsert(ctx, entity.StockEntry{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    available - amount,
		UpdatedAt:   s.now(),
	})
}

// Total suma la cantidad del producto en todas las bodegas.
func (s *StockLedger) Total(ctx context.Context, productID string) (int64, error) {
	return s.repo.SumByProduct(ctx, productID)
}

// ByProduct lista las filas de stock de un producto.
func (s *StockLedger) ByProduct(ctx context.Context, productID string) ([]entity.StockEntry, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// ByWarehouse lista las filas de stock de una bodega.
func (s *StockLedger) ByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockEntry, error) {
	return s.repo.ListByWarehouse(ctx, warehouseID)
}
