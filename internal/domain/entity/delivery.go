package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus estado de la entrega de un pedido.
type DeliveryStatus string

// Estados de entrega.
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryShipped   DeliveryStatus = "shipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// Valid indica si el estado es uno de los conocidos.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

// Delivery entrega de un pedido: forma de envío, dirección y costo. Un pedido tiene a lo sumo una.
// Cost no forma parte del pago del pedido.
type Delivery struct {
	ID        string
	OrderID   string
	Method    string
	Address   string
	Status    DeliveryStatus
	Cost      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
