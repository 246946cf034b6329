package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// MovementConfig comportamiento configurable de los traslados.
type MovementConfig struct {
	// RestockOnCancel devuelve la cantidad a la bodega de origen al cancelar un traslado.
	RestockOnCancel bool
}

// CreateMovementInput datos de un traslado nuevo. Status vacío = in_transit.
type CreateMovementInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	MovedAt         time.Time
	EmployeeID      string
	Status          entity.MovementStatus
}

// MovementStatusResult resultado de un cambio de estado. Changed=false si el estado ya era el pedido.
type MovementStatusResult struct {
	Movement *entity.ProductMovement
	Changed  bool
}

// MovementProcessor debita el origen al crear y acredita el destino al entregar.
type MovementProcessor struct {
	tx  TxRunner
	cfg MovementConfig
	now func() time.Time
}

func NewMovementProcessor(tx TxRunner, cfg MovementConfig) *MovementProcessor {
	return &MovementProcessor{tx: tx, cfg: cfg, now: time.Now}
}

// Create registra el traslado y debita el origen. Si se crea ya entregado, acredita el destino en la misma tx.
func (p *MovementProcessor) Create(ctx context.Context, in CreateMovementInput) (*entity.ProductMovement, error) {
	if in.ProductID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrSameWarehouse
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	status := in.Status
	if status == "" {
		status = entity.MovementInTransit
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	now := p.now().UTC()
	movedAt := in.MovedAt
	if movedAt.IsZero() {
		movedAt = now
	}

	var created *entity.ProductMovement
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		if _, err := requireProduct(ctx, r, in.ProductID); err != nil {
			return err
		}
		if _, err := requireWarehouse(ctx, r, in.FromWarehouseID); err != nil {
			return err
		}
		if _, err := requireWarehouse(ctx, r, in.ToWarehouseID); err != nil {
			return err
		}
		stock := NewStockLedger(r.Stock)
		if err := stock.Remove(ctx, in.ProductID, in.FromWarehouseID, in.Quantity); err != nil {
			return err
		}
		m := &entity.ProductMovement{
			ID:              uuid.New().String(),
			ProductID:       in.ProductID,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			Quantity:        in.Quantity,
			MovedAt:         movedAt,
			Status:          status,
			EmployeeID:      in.EmployeeID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := p.applyTerminal(ctx, stock, m, now); err != nil {
			return err
		}
		if err := r.Movements.Create(ctx, m); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus cambia el estado del traslado. Repetir el estado actual no tiene efecto;
// salir de delivered o cancelled retorna ErrInvalidTransition.
func (p *MovementProcessor) UpdateStatus(ctx context.Context, id string, status entity.MovementStatus) (*MovementStatusResult, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var res *MovementStatusResult
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		m, err := r.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Status == status {
			res = &MovementStatusResult{Movement: m}
			return nil
		}
		if m.Status.Terminal() {
			return domain.ErrInvalidTransition
		}
		now := p.now().UTC()
		m.Status = status
		m.UpdatedAt = now
		if err := p.applyTerminal(ctx, NewStockLedger(r.Stock), m, now); err != nil {
			return err
		}
		if err := r.Movements.UpdateStatus(ctx, m); err != nil {
			return err
		}
		res = &MovementStatusResult{Movement: m, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// applyTerminal aplica el efecto de stock de entrar en m.Status.
func (p *MovementProcessor) applyTerminal(ctx context.Context, stock *StockLedger, m *entity.ProductMovement, now time.Time) error {
	switch m.Status {
	case entity.MovementDelivered:
		m.DeliveredAt = &now
		return stock.Add(ctx, m.ProductID, m.ToWarehouseID, m.Quantity)
	case entity.MovementCancelled:
		if p.cfg.RestockOnCancel {
			return stock.Add(ctx, m.ProductID, m.FromWarehouseID, m.Quantity)
		}
	}
	return nil
}

// Get devuelve un traslado por ID.
func (p *MovementProcessor) Get(ctx context.Context, id string) (*entity.ProductMovement, error) {
	var m *entity.ProductMovement
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		m, err = r.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List lista traslados según el filtro.
func (p *MovementProcessor) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.ProductMovement, error) {
	var out []*entity.ProductMovement
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		out, err = r.Movements.List(ctx, filter)
		return err
	})
	return out, err
}
