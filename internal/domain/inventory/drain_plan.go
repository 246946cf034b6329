package inventory

import (
	"sort"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// Draw cantidad a retirar de una bodega.
type Draw struct {
	WarehouseID string
	Quantity    int64
}

// DrainPlan reparte quantity entre las filas de stock de un producto, primero la bodega
// con más unidades (empate: menor WarehouseID). ok=false si el stock agregado no alcanza;
// en ese caso available es el total disponible.
func DrainPlan(entries []entity.StockEntry, quantity int64) (plan []Draw, available int64, ok bool) {
	sorted := make([]entity.StockEntry, 0, len(entries))
	for _, e := range entries {
		if e.Quantity > 0 {
			sorted = append(sorted, e)
			available += e.Quantity
		}
	}
	if quantity <= 0 || available < quantity {
		return nil, available, false
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Quantity != sorted[j].Quantity {
			return sorted[i].Quantity > sorted[j].Quantity
		}
		return sorted[i].WarehouseID < sorted[j].WarehouseID
	})

	remaining := quantity
	for _, e := range sorted {
		if remaining == 0 {
			break
		}
		take := e.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Draw{WarehouseID: e.WarehouseID, Quantity: take})
		remaining -= take
	}
	return plan, available, true
}
