package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"gorm.io/gorm"
)

var (
	_ repository.IncomingInvoiceRepository = (*IncomingInvoiceRepo)(nil)
	_ repository.ProductMovementRepository = (*ProductMovementRepo)(nil)
)

// ─── Recepciones ─────────────────────────────────────────────────────────────

type IncomingInvoiceRepo struct{ db *gorm.DB }

func (r *IncomingInvoiceRepo) Create(ctx context.Context, inv *entity.IncomingInvoice) error {
	m := invoiceModel(*inv)
	return wrapWrite("insert incoming invoice", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *IncomingInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.IncomingInvoice, error) {
	var m invoiceModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get incoming invoice: %w", err)
	}
	if !found {
		return nil, nil
	}
	inv := entity.IncomingInvoice(m)
	return &inv, nil
}

func (r *IncomingInvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.IncomingInvoice, error) {
	q := r.db.WithContext(ctx).Model(&invoiceModel{})
	if f.ProductID != "" {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.WarehouseID != "" {
		q = q.Where("warehouse_id = ?", f.WarehouseID)
	}
	if f.From != nil {
		q = q.Where("received_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("received_at <= ?", *f.To)
	}
	var rows []invoiceModel
	if err := page(q.Order("received_at DESC"), f.Limit, f.Offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list incoming invoices: %w", err)
	}
	out := make([]*entity.IncomingInvoice, 0, len(rows))
	for _, m := range rows {
		inv := entity.IncomingInvoice(m)
		out = append(out, &inv)
	}
	return out, nil
}

// ─── Traslados ───────────────────────────────────────────────────────────────

type ProductMovementRepo struct{ db *gorm.DB }

func (r *ProductMovementRepo) Create(ctx context.Context, mv *entity.ProductMovement) error {
	m := toMovementModel(mv)
	return wrapWrite("create product movement", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *ProductMovementRepo) GetByID(ctx context.Context, id string) (*entity.ProductMovement, error) {
	var m movementModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get product movement: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *ProductMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductMovementRepo) UpdateStatus(ctx context.Context, mv *entity.ProductMovement) error {
	res := r.db.WithContext(ctx).Model(&movementModel{}).Where("id = ?", mv.ID).Updates(map[string]any{
		"status":       string(mv.Status),
		"delivered_at": mv.DeliveredAt,
		"updated_at":   mv.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("update movement status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.ProductMovement, error) {
	q := r.db.WithContext(ctx).Model(&movementModel{})
	if f.ProductID != "" {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.WarehouseID != "" {
		q = q.Where("from_warehouse_id = ? OR to_warehouse_id = ?", f.WarehouseID, f.WarehouseID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.From != nil {
		q = q.Where("moved_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("moved_at <= ?", *f.To)
	}
	var rows []movementModel
	if err := page(q.Order("moved_at DESC"), f.Limit, f.Offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list product movements: %w", err)
	}
	out := make([]*entity.ProductMovement, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}
