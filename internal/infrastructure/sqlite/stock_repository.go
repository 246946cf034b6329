package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock por (producto, bodega) sobre SQLite.
type StockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) *StockRepo { return &StockRepo{db: db} }

func (r *StockRepo) Find(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error) {
	var m stockModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.StockEntry{ProductID: productID, WarehouseID: warehouseID}, false, nil
	}
	if err != nil {
		return entity.StockEntry{}, false, fmt.Errorf("get stock: %w", err)
	}
	return m.entity(), true, nil
}

// FindForUpdate igual que Find: la transacción ya tiene el lock de escritura (_txlock=immediate).
func (r *StockRepo) FindForUpdate(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error) {
	return r.Find(ctx, productID, warehouseID)
}

func (r *StockRepo) Upsert(ctx context.Context, e entity.StockEntry) error {
	m := stockModel(e)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (r *StockRepo) Delete(ctx context.Context, productID, warehouseID string) error {
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Delete(&stockModel{}).Error
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

func (r *StockRepo) SumByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&stockModel{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}

func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]entity.StockEntry, error) {
	return r.list(ctx, "product_id = ?", productID, "warehouse_id")
}

func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockEntry, error) {
	return r.list(ctx, "warehouse_id = ?", warehouseID, "product_id")
}

func (r *StockRepo) list(ctx context.Context, cond, arg, order string) ([]entity.StockEntry, error) {
	var rows []stockModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	out := make([]entity.StockEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}
