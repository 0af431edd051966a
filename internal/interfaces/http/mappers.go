package http

import (
	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/application/pricing"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

func toInventoryItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Unit:         it.Unit,
		Category:     it.Category,
		CurrentStock: it.CurrentStock,
		CurrentPrice: it.CurrentPrice,
		PricePerUnit: it.PricePerUnit,
		SafetyStock:  it.SafetyStock,
		DailyUsage:   it.DailyUsage,
		SupplierID:   it.SupplierID,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

func toStockChangeResponses(recs []*entity.StockChangeRecord) []dto.StockChangeResponse {
	out := make([]dto.StockChangeResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.StockChangeResponse{
			ID:              r.ID,
			InventoryItemID: r.InventoryItemID,
			ChangeAmount:    r.ChangeAmount,
			ManualReport:    r.ManualReport,
			Category:        r.Category,
			ForeignID:       r.ForeignID,
			Date:            r.Date,
			Reporter:        r.Reporter,
			Description:     r.Description,
		})
	}
	return out
}

func toStockCheckResponse(check inventory.StockCheck) dto.StockCheckResponse {
	return dto.StockCheckResponse{Satisfied: check.Satisfied, Missing: check.Missing}
}

func toMovementResponse(res *inventory.MovementResult) dto.MovementResponse {
	return dto.MovementResponse{RecordIDs: res.RecordIDs, Stock: res.Stock}
}

func toLowStockResponses(alerts []inventory.LowStockAlert) []dto.LowStockAlertResponse {
	out := make([]dto.LowStockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.LowStockAlertResponse{
			InventoryItemID: a.InventoryItemID,
			Name:            a.Name,
			Unit:            a.Unit,
			CurrentStock:    a.CurrentStock,
			Threshold:       a.Threshold,
			Deficit:         a.Deficit,
			SupplierID:      a.SupplierID,
			LoadTimeHours:   a.LoadTimeHours,
		})
	}
	return out
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Contact:       s.Contact,
		LoadTimeHours: s.LoadTimeHours,
		CreatedAt:     s.CreatedAt,
	}
}

func toMenuResponse(m *entity.Menu) dto.MenuResponse {
	return dto.MenuResponse{
		ID:             m.ID,
		Name:           m.Name,
		Size:           m.Size,
		Category:       m.Category,
		CurrentPrice:   m.CurrentPrice,
		SuggestedPrice: m.SuggestedPrice,
		ValueAddedTax:  m.ValueAddedTax,
		Serving:        m.Serving,
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toRecipeLineResponse(r *entity.Recipe, itemName string) dto.RecipeLineResponse {
	return dto.RecipeLineResponse{
		MenuID:          r.MenuID,
		InventoryItemID: r.InventoryItemID,
		InventoryItem:   itemName,
		AmountUsage:     r.AmountUsage,
		Writer:          r.Writer,
		Description:     r.Description,
	}
}

func toMenuWithAvailability(v *cafe.MenuAvailability) dto.MenuWithAvailabilityResponse {
	recipe := make([]dto.RecipeLineResponse, 0, len(v.Recipe))
	for _, l := range v.Recipe {
		recipe = append(recipe, toRecipeLineResponse(l.Recipe, l.InventoryItem))
	}
	return dto.MenuWithAvailabilityResponse{
		MenuResponse:    toMenuResponse(v.Menu),
		NumberAvailable: v.NumberAvailable,
		Recipe:          recipe,
	}
}

func toEstimateResponse(e *entity.EstimatedMenuPriceRecord) *dto.EstimateResponse {
	if e == nil {
		return nil
	}
	return &dto.EstimateResponse{
		ID:                     e.ID,
		MenuID:                 e.MenuID,
		SalesForecast:          e.SalesForecast,
		EstimatedIndirectCosts: e.EstimatedIndirectCosts,
		DirectCost:             e.DirectCost,
		ProfitMargin:           e.ProfitMargin,
		ManualPrice:            e.ManualPrice,
		EstimatedPrice:         e.EstimatedPrice,
		Category:               e.Category,
		FromDate:               e.FromDate,
		Description:            e.Description,
	}
}

func toEstimateResponses(recs []*entity.EstimatedMenuPriceRecord) []dto.EstimateResponse {
	out := make([]dto.EstimateResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, *toEstimateResponse(r))
	}
	return out
}

func toIndirectCostResponse(b *pricing.IndirectCostBreakdown) dto.IndirectCostResponse {
	return dto.IndirectCostResponse{
		From:      b.From,
		To:        b.To,
		Rent:      b.Rent,
		Bills:     b.Bills,
		Equipment: b.Equipment,
		Labor:     b.Labor,
		Total:     b.Total,
	}
}

func toRecalcResponse(rc cafe.Recalc) dto.RecalcResponse {
	return dto.RecalcResponse{Repriced: rc.Repriced, Note: rc.Note}
}
