package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"gorm.io/gorm"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.PartnerRepository   = (*PartnerRepo)(nil)
)

func page(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return q.Limit(limit).Offset(offset)
}

// first carga una fila por clave primaria; found=false si no existe.
func first(ctx context.Context, db *gorm.DB, dest any, id string) (bool, error) {
	err := db.WithContext(ctx).Where("id = ?", id).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// deleteByID elimina por id; ErrNotFound si no había fila.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

type ProductRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	m := toProductModel(p)
	return wrapWrite("insert product", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var m productModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	m := toProductModel(p)
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).
		Select("name", "type_id", "price", "description", "attributes", "updated_at").Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca en nombre y descripción sin distinguir mayúsculas.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	q := r.db.WithContext(ctx).Model(&productModel{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.TypeID != "" {
		q = q.Where("type_id = ?", f.TypeID)
	}
	var rows []productModel
	if err := page(q.Order("name"), f.Limit, f.Offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &productModel{}, id)
}

// ─── Bodegas ─────────────────────────────────────────────────────────────────

type WarehouseRepo struct{ db *gorm.DB }

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepo { return &WarehouseRepo{db: db} }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	m := toWarehouseModel(w)
	return wrapWrite("insert warehouse", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var m warehouseModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	m := toWarehouseModel(w)
	res := r.db.WithContext(ctx).Model(&warehouseModel{}).Where("id = ?", w.ID).
		Select("name", "type_id", "address", "updated_at").Updates(&m)
	if res.Error != nil {
		return wrapWrite("update warehouse", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var rows []warehouseModel
	if err := page(r.db.WithContext(ctx).Order("name"), limit, offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	out := make([]*entity.Warehouse, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}

func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &warehouseModel{}, id)
}

// ─── Clientes ────────────────────────────────────────────────────────────────

type PartnerRepo struct{ db *gorm.DB }

func NewPartnerRepository(db *gorm.DB) *PartnerRepo { return &PartnerRepo{db: db} }

func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	m := toPartnerModel(p)
	return wrapWrite("insert partner", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	var m partnerModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *PartnerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Partner, error) {
	var rows []partnerModel
	if err := page(r.db.WithContext(ctx).Order("name"), limit, offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	out := make([]*entity.Partner, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}

func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	m := toPartnerModel(p)
	res := r.db.WithContext(ctx).Model(&partnerModel{}).Where("id = ?", p.ID).
		Select("name", "partner_type_id", "scope_id", "tax_id", "director", "phone", "email",
			"legal_address", "rating", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update partner: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente; con pedidos asociados retorna ErrConflict.
func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	var orders int64
	if err := r.db.WithContext(ctx).Model(&orderModel{}).Where("partner_id = ?", id).Count(&orders).Error; err != nil {
		return fmt.Errorf("count partner orders: %w", err)
	}
	if orders > 0 {
		return domain.ErrConflict
	}
	return deleteByID(ctx, r.db, &partnerModel{}, id)
}
