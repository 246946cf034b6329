package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

var _ repository.IncomingInvoiceRepository = (*IncomingInvoiceRepo)(nil)

// IncomingInvoiceRepo registro de recepciones sobre PostgreSQL (usable con pool o tx).
type IncomingInvoiceRepo struct {
	q Querier
}

func NewIncomingInvoiceRepository(q Querier) *IncomingInvoiceRepo {
	return &IncomingInvoiceRepo{q: q}
}

const invoiceColumns = `id, product_id, warehouse_id, quantity, received_at, created_by, created_at`

func scanInvoice(row pgx.Row) (*entity.IncomingInvoice, error) {
	var inv entity.IncomingInvoice
	if err := row.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity,
		&inv.ReceivedAt, &inv.CreatedBy, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste la recepción.
func (r *IncomingInvoiceRepo) Create(ctx context.Context, inv *entity.IncomingInvoice) error {
	query := `INSERT INTO incoming_invoices (` + invoiceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.ProductID, inv.WarehouseID, inv.Quantity,
		inv.ReceivedAt, inv.CreatedBy, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert incoming invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción por ID.
func (r *IncomingInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.IncomingInvoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM incoming_invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incoming invoice: %w", err)
	}
	return inv, nil
}

// List lista recepciones por producto, bodega y rango de fechas (received_at).
func (r *IncomingInvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.IncomingInvoice, error) {
	var w whereBuilder
	if filter.ProductID != "" {
		w.add("product_id = $%d", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		w.add("warehouse_id = $%d", filter.WarehouseID)
	}
	if filter.From != nil {
		w.add("received_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("received_at <= $%d", *filter.To)
	}
	query := `SELECT ` + invoiceColumns + ` FROM incoming_invoices` + w.sql() + ` ORDER BY received_at DESC`
	query += w.page(filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list incoming invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.IncomingInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incoming invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
