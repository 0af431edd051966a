package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
)

// PricingHandler expone los recálculos del motor de costeo.
type PricingHandler struct {
	svc *cafe.Service
}

// NewPricingHandler construye el handler.
func NewPricingHandler(svc *cafe.Service) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// DirectCost godoc
// @Summary      Recalcular costo directo
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectCostRequest  true  "Menús a recalcular"
// @Success      201   {object}  dto.RecalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricing/direct-cost [post]
func (h *PricingHandler) DirectCost(c *fiber.Ctx) error {
	var in dto.DirectCostRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	recs, err := h.svc.CalculateUpdateDirectCost(c.UserContext(), in.MenuIDs, in.Category, in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecalculationResponse{Records: toEstimateResponses(recs)})
}

// IndirectCost godoc
// @Summary      Recalcular costo indirecto
// @Description  Suma arriendo, servicios, depreciación y mano de obra de la ventana y lo registra en toda la carta.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WindowRequest  true  "Año inicial y cantidad de años"
// @Success      201   {object}  dto.RecalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/indirect-cost [post]
func (h *PricingHandler) IndirectCost(c *fiber.Ctx) error {
	var in dto.WindowRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	recs, err := h.svc.CalculateIndirectCost(c.UserContext(), in.Year, numYears(in.NumYears), in.Category)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecalculationResponse{Records: toEstimateResponses(recs)})
}

// IndirectBreakdown godoc
// @Summary      Desglose del costo indirecto
// @Tags         pricing
// @Produce      json
// @Param        year       query  int  true   "Año inicial"
// @Param        num_years  query  int  false  "Cantidad de años"  default(1)
// @Success      200  {object}  dto.IndirectCostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pricing/indirect-cost [get]
func (h *PricingHandler) IndirectBreakdown(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	if year < 1900 || year > 9999 {
		return invalidQuery(c, "year")
	}
	n := c.QueryInt("num_years", 1)
	if n < 1 {
		return invalidQuery(c, "num_years")
	}
	b, err := h.svc.IndirectCosts(c.UserContext(), year, n)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toIndirectCostResponse(b))
}

// Forecast godoc
// @Summary      Recalcular pronóstico de ventas
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WindowRequest  true  "Año inicial y cantidad de años"
// @Success      201   {object}  dto.RecalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/forecast [post]
func (h *PricingHandler) Forecast(c *fiber.Ctx) error {
	var in dto.WindowRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	recs, err := h.svc.CalculateForecast(c.UserContext(), in.Year, numYears(in.NumYears), in.Category)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecalculationResponse{Records: toEstimateResponses(recs)})
}

func numYears(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
