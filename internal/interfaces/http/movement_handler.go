package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// MovementHandler traslados entre bodegas (protegido).
type MovementHandler struct {
	svc *ledger.Service
}

func NewMovementHandler(svc *ledger.Service) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar traslado entre bodegas
// @Description  Debita el origen al crear. Si status=delivered acredita el destino en la misma operación.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Traslado"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var movedAt time.Time
	if in.MovedAt != nil {
		movedAt = *in.MovedAt
	}
	m, err := h.svc.CreateMovement(c.UserContext(), ledger.CreateMovementInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		MovedAt:         movedAt,
		EmployeeID:      GetEmployeeID(c),
		Status:          entity.MovementStatus(in.Status),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(m))
}

func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.svc.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponse(m))
}

// List filtra por product_id, warehouse_id (origen o destino), status y rango from/to.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	status := entity.MovementStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}
	p := page(c)
	list, err := h.svc.ListMovements(c.UserContext(), repository.MovementFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Status:      status,
		From:        from,
		To:          to,
		Limit:       p.Limit,
		Offset:      p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del traslado
// @Description  delivered acredita el destino una sola vez. Desde delivered o cancelled no hay transiciones.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del traslado"
// @Param        body  body  dto.UpdateStatusRequest  true  "in_transit | delivered | cancelled"
// @Success      200   {object}  dto.StatusChangeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/status [patch]
func (h *MovementHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.svc.UpdateMovementStatus(c.UserContext(), c.Params("id"), entity.MovementStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusChangeResponse{Changed: res.Changed, Movement: toMovementResponse(res.Movement)})
}
