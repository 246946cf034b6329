package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
)

// StockHandler consultas de stock (protegido).
type StockHandler struct {
	svc *ledger.Service
}

func NewStockHandler(svc *ledger.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

// Quantity GET /api/stock?product_id=&warehouse_id=. Sin fila la cantidad es 0.
func (h *StockHandler) Quantity(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	q, err := h.svc.Quantity(c.UserContext(), productID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: q})
}

// ByProduct stock del producto por bodega y su total.
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	entries, err := h.svc.StockByProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ProductStockResponse{ProductID: id, Entries: toStockEntries(entries)}
	for _, e := range entries {
		out.Total += e.Quantity
	}
	return c.JSON(out)
}

func (h *StockHandler) ByWarehouse(c *fiber.Ctx) error {
	id := c.Params("id")
	entries, err := h.svc.StockByWarehouse(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WarehouseStockResponse{WarehouseID: id, Entries: toStockEntries(entries)})
}
