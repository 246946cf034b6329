package repository

import (
	"context"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// DeliveryRepository define el puerto de persistencia para entregas de pedidos.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	Update(ctx context.Context, delivery *entity.Delivery) error
}
