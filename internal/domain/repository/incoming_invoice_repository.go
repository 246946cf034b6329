package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// InvoiceFilter filtros del listado de recepciones.
type InvoiceFilter struct {
	ProductID   string
	WarehouseID string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// IncomingInvoiceRepository puerto de persistencia del registro de recepciones (solo inserción).
type IncomingInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.IncomingInvoice) error
	GetByID(ctx context.Context, id string) (*entity.IncomingInvoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.IncomingInvoice, error)
}
