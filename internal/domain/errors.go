package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrSameWarehouse     = errors.New("la bodega de origen y destino no pueden ser la misma")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// InsufficientStockError detalla qué producto no alcanzó a cubrir el débito.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string // vacío cuando se validó contra el stock agregado
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	if e.WarehouseID == "" {
		return fmt.Sprintf("stock insuficiente del producto %s: solicitado %d, disponible %d",
			e.ProductID, e.Requested, e.Available)
	}
	return fmt.Sprintf("stock insuficiente del producto %s en bodega %s: solicitado %d, disponible %d",
		e.ProductID, e.WarehouseID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
