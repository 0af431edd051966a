package cafe

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/pricing"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// AddRecipe agrega una línea de receta y recalcula el costo directo del menú.
func (s *Service) AddRecipe(ctx context.Context, menuID string, in dto.CreateRecipeRequest) (*entity.Recipe, Recalc, error) {
	recipe, err := s.recipes.Create(ctx, menuID, in)
	if err != nil {
		return nil, Recalc{}, err
	}
	rc, err := s.OnRecipeChanged(ctx, menuID)
	return recipe, rc, err
}

// UpdateRecipe cambia una línea; solo un cambio de consumo recalcula.
func (s *Service) UpdateRecipe(ctx context.Context, menuID, inventoryItemID string, in dto.UpdateRecipeRequest) (*entity.Recipe, Recalc, error) {
	recipe, amountChanged, err := s.recipes.Update(ctx, menuID, inventoryItemID, in)
	if err != nil {
		return nil, Recalc{}, err
	}
	if !amountChanged {
		return recipe, Recalc{}, nil
	}
	rc, err := s.OnRecipeChanged(ctx, menuID)
	return recipe, rc, err
}

// DeleteRecipe elimina una línea y recalcula el costo directo del menú.
func (s *Service) DeleteRecipe(ctx context.Context, menuID, inventoryItemID string) (Recalc, error) {
	if err := s.recipes.Delete(ctx, menuID, inventoryItemID); err != nil {
		return Recalc{}, err
	}
	return s.OnRecipeChanged(ctx, menuID)
}

// AddRent registra un arriendo y recalcula el costo indirecto de su año.
func (s *Service) AddRent(ctx context.Context, in dto.CreateRentRequest) (string, Recalc, error) {
	rent, err := s.sources.CreateRent(ctx, in)
	if err != nil {
		return "", Recalc{}, err
	}
	rc, err := s.OnIndirectSourceChanged(ctx, rent.FromDate.Year(), entity.PriceCategoryRentChanged)
	return rent.ID, rc, err
}

// AddBills registra servicios estimados y recalcula el costo indirecto de su año.
func (s *Service) AddBills(ctx context.Context, in dto.CreateBillsRequest) (string, Recalc, error) {
	bills, err := s.sources.CreateBills(ctx, in)
	if err != nil {
		return "", Recalc{}, err
	}
	rc, err := s.OnIndirectSourceChanged(ctx, bills.FromDate.Year(), entity.PriceCategoryBillsChanged)
	return bills.ID, rc, err
}

// AddEquipment registra un equipo y recalcula el costo indirecto del año de compra.
func (s *Service) AddEquipment(ctx context.Context, in dto.CreateEquipmentRequest) (string, Recalc, error) {
	eq, err := s.sources.CreateEquipment(ctx, in)
	if err != nil {
		return "", Recalc{}, err
	}
	rc, err := s.OnIndirectSourceChanged(ctx, eq.PurchaseDate.Year(), entity.PriceCategoryEquipmentChanged)
	return eq.ID, rc, err
}

// AddPosition registra un cargo; el cargo no tiene fecha, se recalcula el año en curso.
func (s *Service) AddPosition(ctx context.Context, in dto.CreatePositionRequest) (string, Recalc, error) {
	pos, err := s.sources.CreatePosition(ctx, in)
	if err != nil {
		return "", Recalc{}, err
	}
	rc, err := s.OnIndirectSourceChanged(ctx, time.Now().Year(), entity.PriceCategoryPositionChanged)
	return pos.ID, rc, err
}

// AddShift registra un turno con su personal y recalcula el costo indirecto de su año.
func (s *Service) AddShift(ctx context.Context, in dto.CreateShiftRequest) (string, Recalc, error) {
	shift, err := s.sources.CreateShift(ctx, in)
	if err != nil {
		return "", Recalc{}, err
	}
	rc, err := s.OnIndirectSourceChanged(ctx, shift.FromDate.Year(), entity.PriceCategoryLaborChanged)
	return shift.ID, rc, err
}

// AddSalesForecast registra un pronóstico y recalcula el pronóstico agregado de su año.
func (s *Service) AddSalesForecast(ctx context.Context, in dto.CreateSalesForecastRequest) (string, Recalc, error) {
	f, err := s.sources.CreateSalesForecast(ctx, in)
	if err != nil {
		return "", Recalc{}, err
	}
	rc, err := s.OnForecastChanged(ctx, f.FromDate.Year())
	return f.ID, rc, err
}

// CalculateUpdateDirectCost recalcula el costo directo de los menús indicados.
func (s *Service) CalculateUpdateDirectCost(ctx context.Context, menuIDs []string, category, description string) ([]*entity.EstimatedMenuPriceRecord, error) {
	return s.costing.CalculateUpdateDirectCost(ctx, menuIDs, category, description)
}

// CalculateIndirectCost recalcula el pozo indirecto de la ventana para toda la carta.
func (s *Service) CalculateIndirectCost(ctx context.Context, year, numYears int, category string) ([]*entity.EstimatedMenuPriceRecord, error) {
	return s.costing.CalculateIndirectCost(ctx, year, numYears, category)
}

// IndirectCosts desglose del pozo indirecto sin registrar nada.
func (s *Service) IndirectCosts(ctx context.Context, year, numYears int) (*pricing.IndirectCostBreakdown, error) {
	return s.costing.IndirectCosts(ctx, year, numYears)
}

// CalculateForecast recalcula el pronóstico agregado de la ventana para toda la carta.
func (s *Service) CalculateForecast(ctx context.Context, year, numYears int, category string) ([]*entity.EstimatedMenuPriceRecord, error) {
	return s.costing.CalculateForecast(ctx, year, numYears, category)
}

// CalculateManualPriceChange fija el precio manual de un menú.
func (s *Service) CalculateManualPriceChange(ctx context.Context, menuID string, price decimal.Decimal, category string) (*entity.EstimatedMenuPriceRecord, error) {
	return s.costing.CalculateManualPriceChange(ctx, menuID, price, category)
}

// PriceHistory historial de precios del menú.
func (s *Service) PriceHistory(ctx context.Context, menuID string, limit int) ([]*entity.EstimatedMenuPriceRecord, error) {
	return s.costing.PriceHistory(ctx, menuID, limit)
}
