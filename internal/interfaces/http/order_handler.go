package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// OrderHandler pedidos de clientes, sus líneas y pagos (protegido).
type OrderHandler struct {
	svc *ledger.Service
}

func NewOrderHandler(svc *ledger.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var employeeID *string
	if id := GetEmployeeID(c); id != "" {
		employeeID = &id
	}
	o, err := h.svc.CreateOrder(c.UserContext(), ledger.CreateOrderInput{
		PartnerID:   in.PartnerID,
		EmployeeID:  employeeID,
		WarehouseID: in.WarehouseID,
		Comment:     in.Comment,
		Status:      entity.OrderStatus(in.Status),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(o))
}

// GetByID devuelve el pedido con sus líneas y su pago.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.svc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.OrderDetailResponse{
		Order:    *toOrderResponse(d.Order),
		Items:    make([]dto.LineItemResponse, 0, len(d.Items)),
		Payment:  toPaymentResponse(d.Payment),
		Delivery: toDeliveryResponse(d.Delivery),
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, toLineItemResponse(it))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos por fecha de creación
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p := page(c)
	list, err := h.svc.ListOrders(c.UserContext(), repository.OrderFilter{From: from, To: to, Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem agrega una línea o suma cantidad a la existente y recalcula el pago.
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddLineItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.svc.AddLineItem(c.UserContext(), c.Params("id"), in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LineItemResultResponse{
		Item:    toLineItemResponse(res.Item),
		Payment: toPaymentResponse(res.Payment),
	})
}

func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	pay, err := h.svc.RemoveLineItem(c.UserContext(), c.Params("id"), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"payment": toPaymentResponse(pay)})
}

// Approve godoc
// @Summary      Aprobar pedido
// @Description  Descuenta el stock de todas las líneas en una sola operación. Aprobar de nuevo no vuelve a descontar.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.StatusChangeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	res, err := h.svc.ApproveOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusChangeResponse{Changed: res.Changed, Order: toOrderResponse(res.Order)})
}

// UpdateStatus cambia el estado del pedido. Pasar a approved exige los mismos roles que Approve.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	status := entity.OrderStatus(in.Status)
	if status == entity.OrderApproved && !canApprove(GetRole(c)) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para aprobar pedidos"})
	}
	res, err := h.svc.UpdateOrderStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusChangeResponse{Changed: res.Changed, Order: toOrderResponse(res.Order)})
}

func (h *OrderHandler) MarkPaid(c *fiber.Ctx) error {
	pay, err := h.svc.MarkOrderPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPaymentResponse(pay))
}

// SetDelivery godoc
// @Summary      Registrar o actualizar la entrega del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del pedido"
// @Param        body  body  dto.SetDeliveryRequest  true  "Entrega"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivery [put]
func (h *OrderHandler) SetDelivery(c *fiber.Ctx) error {
	var in dto.SetDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	d, err := h.svc.SetOrderDelivery(c.UserContext(), c.Params("id"), ledger.DeliveryInput{
		Method:  in.Method,
		Address: in.Address,
		Status:  entity.DeliveryStatus(in.Status),
		Cost:    in.Cost,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toDeliveryResponse(d))
}

var approverRoles = []string{RoleAdmin, RoleManager}

func canApprove(role string) bool {
	for _, r := range approverRoles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}
