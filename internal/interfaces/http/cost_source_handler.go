package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
)

// CostSourceHandler alta de fuentes de costo indirecto y pronósticos.
// Cada alta dispara el recálculo de la carta y lo informa en la respuesta.
type CostSourceHandler struct {
	svc *cafe.Service
}

// NewCostSourceHandler construye el handler.
func NewCostSourceHandler(svc *cafe.Service) *CostSourceHandler {
	return &CostSourceHandler{svc: svc}
}

func created(c *fiber.Ctx, id string, rc cafe.Recalc, err error) error {
	if err != nil && id == "" {
		return writeError(c, err)
	}
	// la fuente quedó guardada aunque el recálculo haya fallado
	resp := dto.CostSourceCreatedResponse{ID: id, Repriced: rc.Repriced, Note: rc.Note}
	if err != nil {
		resp.Note = "registro guardado; el recálculo de precios falló y queda pendiente"
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Rent godoc
// @Summary      Registrar arriendo
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRentRequest  true  "Arriendo"
// @Success      201   {object}  dto.CostSourceCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costs/rent [post]
func (h *CostSourceHandler) Rent(c *fiber.Ctx) error {
	var in dto.CreateRentRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, rc, err := h.svc.AddRent(c.UserContext(), in)
	return created(c, id, rc, err)
}

// Bills godoc
// @Summary      Registrar servicios
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillsRequest  true  "Servicios"
// @Success      201   {object}  dto.CostSourceCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costs/bills [post]
func (h *CostSourceHandler) Bills(c *fiber.Ctx) error {
	var in dto.CreateBillsRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, rc, err := h.svc.AddBills(c.UserContext(), in)
	return created(c, id, rc, err)
}

// Equipment godoc
// @Summary      Registrar equipo
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "Equipo"
// @Success      201   {object}  dto.CostSourceCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costs/equipment [post]
func (h *CostSourceHandler) Equipment(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, rc, err := h.svc.AddEquipment(c.UserContext(), in)
	return created(c, id, rc, err)
}

// Position godoc
// @Summary      Registrar cargo
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePositionRequest  true  "Cargo"
// @Success      201   {object}  dto.CostSourceCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/costs/positions [post]
func (h *CostSourceHandler) Position(c *fiber.Ctx) error {
	var in dto.CreatePositionRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, rc, err := h.svc.AddPosition(c.UserContext(), in)
	return created(c, id, rc, err)
}

// Shift godoc
// @Summary      Registrar turno
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShiftRequest  true  "Turno con asignaciones"
// @Success      201   {object}  dto.CostSourceCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/costs/shifts [post]
func (h *CostSourceHandler) Shift(c *fiber.Ctx) error {
	var in dto.CreateShiftRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, rc, err := h.svc.AddShift(c.UserContext(), in)
	return created(c, id, rc, err)
}

// SalesForecast godoc
// @Summary      Registrar pronóstico de ventas
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesForecastRequest  true  "Pronóstico"
// @Success      201   {object}  dto.CostSourceCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costs/forecasts [post]
func (h *CostSourceHandler) SalesForecast(c *fiber.Ctx) error {
	var in dto.CreateSalesForecastRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, rc, err := h.svc.AddSalesForecast(c.UserContext(), in)
	return created(c, id, rc, err)
}
