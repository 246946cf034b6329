package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// MovementFilter filtros del listado de traslados.
// WarehouseID coincide tanto con el origen como con el destino.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Status      entity.MovementStatus
	From, To    *time.Time
	Limit       int
	Offset      int
}

// ProductMovementRepository define el puerto de persistencia para traslados entre bodegas.
type ProductMovementRepository interface {
	Create(ctx context.Context, movement *entity.ProductMovement) error
	GetByID(ctx context.Context, id string) (*entity.ProductMovement, error)
	// GetForUpdate bloquea la fila del traslado (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error)
	UpdateStatus(ctx context.Context, movement *entity.ProductMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.ProductMovement, error)
}
