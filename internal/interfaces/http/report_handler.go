package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
)

// ReportHandler descargas de documentos (PDF de la carta, planilla de precios).
type ReportHandler struct {
	reports *cafe.Reports
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *cafe.Reports) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// PriceSheet godoc
// @Summary      Hoja de precios de la carta (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Router       /api/menu/price-sheet.pdf [get]
func (h *ReportHandler) PriceSheet(c *fiber.Ctx) error {
	doc, name, err := h.reports.MenuPriceSheetPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, "application/pdf", name, doc)
}

// PriceHistory godoc
// @Summary      Historial de precios del menú (XLSX)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del menú"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/prices.xlsx [get]
func (h *ReportHandler) PriceHistory(c *fiber.Ctx) error {
	doc, name, err := h.reports.PriceHistoryXLSX(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name, doc)
}

func attachment(c *fiber.Ctx, contentType, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(body)
}
