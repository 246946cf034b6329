package entity

import "time"

// StockEntry es la cantidad de un producto en una bodega.
// Una fila persistida siempre tiene Quantity > 0: al llegar a cero se elimina.
type StockEntry struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
