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

var _ repository.ProductMovementRepository = (*ProductMovementRepo)(nil)

// ProductMovementRepo traslados entre bodegas sobre PostgreSQL (usable con pool o tx).
type ProductMovementRepo struct {
	q Querier
}

// NewProductMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductMovementRepository(q Querier) *ProductMovementRepo {
	return &ProductMovementRepo{q: q}
}

const movementColumns = `id, product_id, from_warehouse_id, to_warehouse_id, quantity, moved_at, status,
	employee_id, delivered_at, created_at, updated_at`

func scanMovement(row pgx.Row) (*entity.ProductMovement, error) {
	var m entity.ProductMovement
	var employeeID *string
	err := row.Scan(&m.ID, &m.ProductID, &m.FromWarehouseID, &m.ToWarehouseID, &m.Quantity, &m.MovedAt,
		&m.Status, &employeeID, &m.DeliveredAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if employeeID != nil {
		m.EmployeeID = *employeeID
	}
	return &m, nil
}

// Create persiste un traslado.
func (r *ProductMovementRepo) Create(ctx context.Context, m *entity.ProductMovement) error {
	query := `INSERT INTO product_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	employeeID := (*string)(nil)
	if m.EmployeeID != "" {
		employeeID = &m.EmployeeID
	}
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.FromWarehouseID, m.ToWarehouseID, m.Quantity,
		m.MovedAt, m.Status, employeeID, m.DeliveredAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product movement: %w", err)
	}
	return nil
}

func (r *ProductMovementRepo) get(ctx context.Context, query, id string) (*entity.ProductMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product movement: %w", err)
	}
	return m, nil
}

// GetByID obtiene un traslado por ID.
func (r *ProductMovementRepo) GetByID(ctx context.Context, id string) (*entity.ProductMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM product_movements WHERE id = $1`, id)
}

// GetForUpdate obtiene el traslado bloqueando la fila hasta el fin de la tx.
func (r *ProductMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM product_movements WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus persiste status, delivered_at y updated_at.
func (r *ProductMovementRepo) UpdateStatus(ctx context.Context, m *entity.ProductMovement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product_movements SET status = $2, delivered_at = $3, updated_at = $4 WHERE id = $1`,
		m.ID, m.Status, m.DeliveredAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update movement status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista traslados; WarehouseID coincide con origen o destino.
func (r *ProductMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.ProductMovement, error) {
	var w whereBuilder
	if filter.ProductID != "" {
		w.add("product_id = $%d", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		w.add("(from_warehouse_id = $%[1]d OR to_warehouse_id = $%[1]d)", filter.WarehouseID)
	}
	if filter.Status != "" {
		w.add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		w.add("moved_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("moved_at <= $%d", *filter.To)
	}
	query := `SELECT ` + movementColumns + ` FROM product_movements` + w.sql() + ` ORDER BY moved_at DESC`
	query += w.page(filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list product movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
