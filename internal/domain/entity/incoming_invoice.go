package entity

import "time"

// IncomingInvoice registra una recepción de mercancía en una bodega.
// Es un registro de solo inserción: nunca se modifica después de creado.
type IncomingInvoice struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int64
	ReceivedAt  time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
