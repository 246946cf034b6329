package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas de pedidos sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, order_id, method, address, status, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.OrderID, d.Method, d.Address, string(d.Status), d.Cost, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	var (
		d      entity.Delivery
		status string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, order_id, method, address, status, cost, created_at, updated_at
		FROM deliveries WHERE id = $1`, id).Scan(
		&d.ID, &d.OrderID, &d.Method, &d.Address, &status, &d.Cost, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	d.Status = entity.DeliveryStatus(status)
	return &d, nil
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE deliveries SET method = $2, address = $3, status = $4, cost = $5, updated_at = $6
		WHERE id = $1`,
		d.ID, d.Method, d.Address, string(d.Status), d.Cost, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
