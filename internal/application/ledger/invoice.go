package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// ReceiveInput datos de una recepción de mercancía.
type ReceiveInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	ReceivedAt  time.Time // cero = ahora
	EmployeeID  string
}

// InvoiceProcessor registra recepciones y acredita el stock de la bodega receptora.
type InvoiceProcessor struct {
	tx  TxRunner
	now func() time.Time
}

func NewInvoiceProcessor(tx TxRunner) *InvoiceProcessor {
	return &InvoiceProcessor{tx: tx, now: time.Now}
}

// Receive crea el registro y suma la cantidad al stock en una sola transacción.
func (p *InvoiceProcessor) Receive(ctx context.Context, in ReceiveInput) (*entity.IncomingInvoice, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := p.now().UTC()
	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}

	var created *entity.IncomingInvoice
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		if _, err := requireProduct(ctx, r, in.ProductID); err != nil {
			return err
		}
		if _, err := requireWarehouse(ctx, r, in.WarehouseID); err != nil {
			return err
		}
		inv := &entity.IncomingInvoice{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			ReceivedAt:  receivedAt,
			CreatedBy:   in.EmployeeID,
			CreatedAt:   now,
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if err := NewStockLedger(r.Stock).Add(ctx, in.ProductID, in.WarehouseID, in.Quantity); err != nil {
			return err
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List devuelve las recepciones que cumplen el filtro.
func (p *InvoiceProcessor) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.IncomingInvoice, error) {
	var out []*entity.IncomingInvoice
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		out, err = r.Invoices.List(ctx, filter)
		return err
	})
	return out, err
}
