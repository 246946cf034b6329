package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos y líneas de pedido sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, employee_id, partner_id, warehouse_id, status, delivery_id, payment_id, comment,
	stock_deducted_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.EmployeeID, &o.PartnerID, &o.WarehouseID, &o.Status, &o.DeliveryID,
		&o.PaymentID, &o.Comment, &o.StockDeductedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) scanOrders(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Create persiste el pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, o.ID, o.EmployeeID, o.PartnerID, o.WarehouseID, o.Status, o.DeliveryID,
		o.PaymentID, o.Comment, o.StockDeductedAt, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando la fila.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste todos los campos mutables del pedido.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `UPDATE orders SET employee_id = $2, warehouse_id = $3, status = $4, delivery_id = $5,
		payment_id = $6, comment = $7, stock_deducted_at = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, o.ID, o.EmployeeID, o.WarehouseID, o.Status, o.DeliveryID,
		o.PaymentID, o.Comment, o.StockDeductedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos por rango de created_at, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var w whereBuilder
	if filter.From != nil {
		w.add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("created_at <= $%d", *filter.To)
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + w.sql() + ` ORDER BY created_at DESC`
	query += w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return r.scanOrders(rows)
}

// ListCreatedAfter pedidos con created_at > since, en orden de creación.
func (r *OrderRepo) ListCreatedAfter(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error) {
	var w whereBuilder
	w.add("created_at > $%d", since)
	query := `SELECT ` + orderColumns + ` FROM orders` + w.sql() + ` ORDER BY created_at, id` + w.page(limit, 0)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list new orders: %w", err)
	}
	return r.scanOrders(rows)
}

// Delete elimina el pedido; líneas y pago caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─── Líneas ──────────────────────────────────────────────────────────────────

const itemColumns = `id, order_id, product_id, quantity, cost, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.OrderLineItem, error) {
	var it entity.OrderLineItem
	if err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Cost,
		&it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItem obtiene la línea (pedido, producto).
func (r *OrderRepo) GetItem(ctx context.Context, orderID, productID string) (*entity.OrderLineItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 AND product_id = $2`, orderID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return it, nil
}

// ListItems líneas del pedido ordenadas por producto.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderLineItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLineItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpsertItem inserta o reemplaza cantidad y costo de la línea (único por pedido+producto).
func (r *OrderRepo) UpsertItem(ctx context.Context, it *entity.OrderLineItem) error {
	query := `
		INSERT INTO order_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, cost = EXCLUDED.cost, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, it.ID, it.OrderID, it.ProductID, it.Quantity, it.Cost, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert order item: %w", err)
	}
	return nil
}

// DeleteItem elimina la línea.
func (r *OrderRepo) DeleteItem(ctx context.Context, orderID, productID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1 AND product_id = $2`, orderID, productID)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}
