package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

// Estados de un pedido.
const (
	OrderProcessing OrderStatus = "processing"
	OrderAccepted   OrderStatus = "accepted"
	OrderApproved   OrderStatus = "approved"
	OrderInTransit  OrderStatus = "in_transit"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderProcessing, OrderAccepted, OrderApproved, OrderInTransit, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal indica si el pedido ya está cerrado.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order pedido de un cliente (Partner).
// StockDeductedAt se fija la primera vez que el pedido se aprueba y nunca se limpia.
type Order struct {
	ID              string
	EmployeeID      *string
	PartnerID       string
	WarehouseID     *string // bodega de despacho; nil = descontar del stock agregado
	Status          OrderStatus
	DeliveryID      *string // entrega del pedido (Delivery)
	PaymentID       *string
	Comment         string
	StockDeductedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderLineItem línea de un pedido; (OrderID, ProductID) es único.
// Cost = precio unitario × cantidad, capturado al agregar la línea.
type OrderLineItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	Cost      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
