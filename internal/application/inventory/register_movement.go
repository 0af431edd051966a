package inventory

import (
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
)

// MovementFromRequest adapta el request HTTP al MovementInput del motor.
// Usar desde handlers HTTP o desde otros casos de uso que reciban dto.StockMovementRequest.
func MovementFromRequest(in dto.StockMovementRequest) MovementInput {
	return MovementInput{
		Quantity:    in.Quantity,
		Category:    in.Category,
		ForeignID:   in.ForeignID,
		Date:        in.Date,
		Reporter:    in.Reporter,
		Description: in.Description,
	}
}

// ManualReportFromRequest adapta el conteo físico recibido por HTTP.
func ManualReportFromRequest(inventoryItemID string, in dto.ManualReportRequest) ManualReportInput {
	return ManualReportInput{
		InventoryItemID: inventoryItemID,
		Amount:          in.Amount,
		Reporter:        in.Reporter,
		Date:            in.Date,
		Category:        in.Category,
		ForeignID:       in.ForeignID,
		Description:     in.Description,
	}
}
