package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.PaymentRepository  = (*PaymentRepo)(nil)
	_ repository.DeliveryRepository = (*DeliveryRepo)(nil)
)

// OrderRepo pedidos y líneas sobre SQLite.
type OrderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	m := toOrderModel(o)
	return wrapWrite("insert order", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var m orderModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	m := toOrderModel(o)
	res := r.db.WithContext(ctx).Model(&orderModel{}).Where("id = ?", o.ID).
		Select("employee_id", "warehouse_id", "status", "delivery_id", "payment_id", "comment",
			"stock_deducted_at", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	q := r.db.WithContext(ctx).Model(&orderModel{})
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	return r.find(page(q.Order("created_at DESC"), f.Limit, f.Offset))
}

func (r *OrderRepo) ListCreatedAfter(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error) {
	q := r.db.WithContext(ctx).Where("created_at > ?", since).Order("created_at, id")
	return r.find(page(q, limit, 0))
}

func (r *OrderRepo) find(q *gorm.DB) ([]*entity.Order, error) {
	var rows []orderModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*entity.Order, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}

// Delete elimina el pedido con sus líneas, su pago y su entrega.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&orderItemModel{}).Error; err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := db.Where("order_id = ?", id).Delete(&paymentModel{}).Error; err != nil {
		return fmt.Errorf("delete order payments: %w", err)
	}
	if err := db.Where("order_id = ?", id).Delete(&deliveryModel{}).Error; err != nil {
		return fmt.Errorf("delete order deliveries: %w", err)
	}
	return deleteByID(ctx, r.db, &orderModel{}, id)
}

func (r *OrderRepo) GetItem(ctx context.Context, orderID, productID string) (*entity.OrderLineItem, error) {
	var m orderItemModel
	err := r.db.WithContext(ctx).Where("order_id = ? AND product_id = ?", orderID, productID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return m.entity(), nil
}

func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderLineItem, error) {
	var rows []orderItemModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("product_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	out := make([]*entity.OrderLineItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.entity())
	}
	return out, nil
}

func (r *OrderRepo) UpsertItem(ctx context.Context, it *entity.OrderLineItem) error {
	m := orderItemModel(*it)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "cost", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("upsert order item: %w", err)
	}
	return nil
}

func (r *OrderRepo) DeleteItem(ctx context.Context, orderID, productID string) error {
	err := r.db.WithContext(ctx).Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&orderItemModel{}).Error
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}

// PaymentRepo pagos sobre SQLite.
type PaymentRepo struct{ db *gorm.DB }

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	m := paymentModel(*p)
	return wrapWrite("insert payment", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	var m paymentModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	m := paymentModel(*p)
	res := r.db.WithContext(ctx).Model(&paymentModel{}).Where("id = ?", p.ID).
		Select("amount", "status", "paid_at", "updated_at").Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&paymentModel{}).Error; err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// DeliveryRepo entregas de pedidos sobre SQLite.
type DeliveryRepo struct{ db *gorm.DB }

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	m := toDeliveryModel(d)
	return wrapWrite("insert delivery", r.db.WithContext(ctx).Create(&m).Error)
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	var m deliveryModel
	found, err := first(ctx, r.db, &m, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if !found {
		return nil, nil
	}
	return m.entity(), nil
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	m := toDeliveryModel(d)
	res := r.db.WithContext(ctx).Model(&deliveryModel{}).Where("id = ?", d.ID).
		Select("method", "address", "status", "cost", "updated_at").Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("update delivery: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
