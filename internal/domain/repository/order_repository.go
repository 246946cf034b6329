package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos por fecha de creación.
type OrderFilter struct {
	From, To *time.Time
	Limit    int
	Offset   int
}

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// ListCreatedAfter devuelve los pedidos creados estrictamente después de since, en orden de creación.
	ListCreatedAfter(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error)
	Delete(ctx context.Context, id string) error

	GetItem(ctx context.Context, orderID, productID string) (*entity.OrderLineItem, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderLineItem, error)
	UpsertItem(ctx context.Context, item *entity.OrderLineItem) error
	DeleteItem(ctx context.Context, orderID, productID string) error
}
