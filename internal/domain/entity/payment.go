package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

// Payment pago de un pedido. Amount es la suma de los costos de sus líneas
// y se recalcula cada vez que cambian.
type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Status    string
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
