package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// InvoiceHandler recepciones de mercancía (protegido).
type InvoiceHandler struct {
	svc *ledger.Service
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc *ledger.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveInvoiceRequest  true  "product_id, warehouse_id, quantity"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var receivedAt time.Time
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}
	inv, err := h.svc.ReceiveInvoice(c.UserContext(), ledger.ReceiveInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		ReceivedAt:  receivedAt,
		EmployeeID:  GetEmployeeID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(inv))
}

// List godoc
// @Summary      Listar recepciones
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p := page(c)
	list, err := h.svc.ListInvoices(c.UserContext(), repository.InvoiceFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		From:        from,
		To:          to,
		Limit:       p.Limit,
		Offset:      p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return c.JSON(out)
}
