package entity

import "time"

// MovementStatus estado de un traslado entre bodegas.
type MovementStatus string

// Estados de un traslado.
const (
	MovementInTransit MovementStatus = "in_transit"
	MovementDelivered MovementStatus = "delivered"
	MovementCancelled MovementStatus = "cancelled"
)

// Valid indica si el estado es uno de los conocidos.
func (s MovementStatus) Valid() bool {
	switch s {
	case MovementInTransit, MovementDelivered, MovementCancelled:
		return true
	}
	return false
}

// Terminal indica si desde este estado ya no hay transiciones.
func (s MovementStatus) Terminal() bool {
	return s == MovementDelivered || s == MovementCancelled
}

// ProductMovement traslado de una cantidad de producto de una bodega a otra.
// El origen se debita al crear; el destino se acredita una sola vez al pasar a delivered.
type ProductMovement struct {
	ID              string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	MovedAt         time.Time
	Status          MovementStatus
	EmployeeID      string
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
