package inventory

import (
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineCost implementa el costo de una línea de pedido (servicio de dominio).
// Costo = PrecioUnitario * Cantidad, redondeado a 2 decimales.
func LineCost(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}

// PaymentTotal suma los costos de las líneas de un pedido.
func PaymentTotal(items []*entity.OrderLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it == nil {
			continue
		}
		total = total.Add(it.Cost)
	}
	return total
}
