package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price puede ser nil (sin precio asignado); en los cálculos se trata como 0.
type Product struct {
	ID          string
	Name        string
	TypeID      string
	Price       *decimal.Decimal
	Description string
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitPrice devuelve el precio unitario efectivo (0 si no tiene precio).
func (p *Product) UnitPrice() decimal.Decimal {
	if p == nil || p.Price == nil {
		return decimal.Zero
	}
	return *p.Price
}
