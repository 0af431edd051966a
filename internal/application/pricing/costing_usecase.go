// Package pricing orquesta el motor de costeo de menú: costo directo, costo indirecto,
// pronóstico de ventas y precio manual, cada recálculo agrega un registro de precio estimado.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	calc "github.com/jhoicas/Cafeteria-api/internal/domain/pricing"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

// CostingUseCase calcula y versiona los precios estimados de la carta.
type CostingUseCase struct {
	menuRepo     repository.MenuRepository
	recipeRepo   repository.RecipeRepository
	itemRepo     repository.InventoryItemRepository
	estimateRepo repository.PriceEstimateRepository
	costRepo     repository.CostSourceRepository
	forecastRepo repository.SalesForecastRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewCostingUseCase construye el motor de costeo.
func NewCostingUseCase(
	menuRepo repository.MenuRepository,
	recipeRepo repository.RecipeRepository,
	itemRepo repository.InventoryItemRepository,
	estimateRepo repository.PriceEstimateRepository,
	costRepo repository.CostSourceRepository,
	forecastRepo repository.SalesForecastRepository,
	log *logger.Logger,
) *CostingUseCase {
	return &CostingUseCase{
		menuRepo:     menuRepo,
		recipeRepo:   recipeRepo,
		itemRepo:     itemRepo,
		estimateRepo: estimateRepo,
		costRepo:     costRepo,
		forecastRepo: forecastRepo,
		log:          log.Named("pricing"),
		now:          time.Now,
	}
}

// EstimateInput valores para un nuevo registro de precio. Un campo nil o en cero se
// considera no informado y se arrastra del registro anterior del mismo menú (0 si no hay).
type EstimateInput struct {
	DirectCost    *decimal.Decimal
	IndirectCosts *decimal.Decimal
	SalesForecast *int64
	ProfitMargin  *decimal.Decimal
	ManualPrice   *decimal.Decimal
	Category      string
	Description   string
	FromDate      *time.Time
}

// IndirectCostBreakdown aporte de cada fuente al pozo de costos indirectos de una ventana.
type IndirectCostBreakdown struct {
	From      time.Time
	To        time.Time
	Rent      decimal.Decimal
	Bills     decimal.Decimal
	Equipment decimal.Decimal
	Labor     decimal.Decimal
	Total     decimal.Decimal
}

// AppendEstimate agrega un registro de precio a cada menú de menuIDs (a toda la carta si está vacío)
// y actualiza el caché de precios del menú: CurrentPrice = precio manual resuelto,
// SuggestedPrice solo si pudo calcularse.
func (uc *CostingUseCase) AppendEstimate(ctx context.Context, menuIDs []string, in EstimateInput) ([]*entity.EstimatedMenuPriceRecord, error) {
	if len(menuIDs) == 0 {
		menus, err := uc.menuRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range menus {
			menuIDs = append(menuIDs, m.ID)
		}
	}

	records := make([]*entity.EstimatedMenuPriceRecord, 0, len(menuIDs))
	for _, id := range menuIDs {
		rec, err := uc.appendOne(ctx, id, in)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (uc *CostingUseCase) appendOne(ctx context.Context, menuID string, in EstimateInput) (*entity.EstimatedMenuPriceRecord, error) {
	prior, err := uc.estimateRepo.Latest(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("último precio estimado de %s: %w", menuID, err)
	}
	if prior == nil {
		prior = &entity.EstimatedMenuPriceRecord{}
	}

	rec := &entity.EstimatedMenuPriceRecord{
		MenuID:                 menuID,
		DirectCost:             pickDecimal(in.DirectCost, prior.DirectCost),
		EstimatedIndirectCosts: pickDecimal(in.IndirectCosts, prior.EstimatedIndirectCosts),
		SalesForecast:          pickInt(in.SalesForecast, prior.SalesForecast),
		ProfitMargin:           pickDecimal(in.ProfitMargin, prior.ProfitMargin),
		ManualPrice:            pickDecimal(in.ManualPrice, prior.ManualPrice),
		Category:               in.Category,
		Description:            in.Description,
		CreatedAt:              uc.now(),
	}
	rec.FromDate = rec.CreatedAt
	if in.FromDate != nil && !in.FromDate.IsZero() {
		rec.FromDate = *in.FromDate
	}
	rec.EstimatedPrice = calc.SuggestedPrice(rec.DirectCost, rec.EstimatedIndirectCosts, rec.SalesForecast, rec.ProfitMargin)

	if err := uc.estimateRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("guardar precio estimado de %s: %w", menuID, err)
	}
	if err := uc.menuRepo.UpdatePrices(ctx, menuID, rec.ManualPrice, rec.EstimatedPrice); err != nil {
		return nil, fmt.Errorf("actualizar precios de %s: %w", menuID, err)
	}

	ev := uc.log.Info().
		Str("menu_id", menuID).
		Str("category", rec.Category).
		Str("direct_cost", rec.DirectCost.String()).
		Int64("sales_forecast", rec.SalesForecast)
	if rec.EstimatedPrice != nil {
		ev = ev.Str("estimated_price", rec.EstimatedPrice.StringFixed(2))
	}
	ev.Msg("precio estimado registrado")
	return rec, nil
}

// pickDecimal: el valor informado gana si no es nil ni cero.
func pickDecimal(supplied *decimal.Decimal, prior decimal.Decimal) decimal.Decimal {
	if supplied != nil && !supplied.IsZero() {
		return *supplied
	}
	return prior
}

func pickInt(supplied *int64, prior int64) int64 {
	if supplied != nil && *supplied != 0 {
		return *supplied
	}
	return prior
}

// DirectCost Σ consumo × costo por unidad de las líneas de receta del menú.
// Un insumo inexistente aporta costo 0.
func (uc *CostingUseCase) DirectCost(ctx context.Context, menuID string) (decimal.Decimal, error) {
	recipes, err := uc.recipeRepo.ListByMenu(ctx, menuID)
	if err != nil {
		return decimal.Zero, err
	}
	lines := make([]calc.CostLine, 0, len(recipes))
	for _, r := range recipes {
		item, err := uc.itemRepo.GetByID(ctx, r.InventoryItemID)
		if err != nil {
			return decimal.Zero, err
		}
		ppu := decimal.Zero
		if item != nil {
			ppu = item.PricePerUnit
		}
		lines = append(lines, calc.CostLine{AmountUsage: r.AmountUsage, PricePerUnit: ppu})
	}
	return calc.DirectCost(lines), nil
}

// CalculateUpdateDirectCost recalcula el costo directo de cada menú indicado y agrega su registro.
// Los ids que no existen se omiten; si no queda ninguno devuelve domain.ErrNotFound.
func (uc *CostingUseCase) CalculateUpdateDirectCost(ctx context.Context, menuIDs []string, category, description string) ([]*entity.EstimatedMenuPriceRecord, error) {
	if len(menuIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	records := make([]*entity.EstimatedMenuPriceRecord, 0, len(menuIDs))
	for _, id := range menuIDs {
		menu, err := uc.menuRepo.GetByID(ctx, id)
		if err != nil {
			return records, err
		}
		if menu == nil {
			uc.log.Warn().Str("menu_id", id).Msg("costo directo: menú inexistente, se omite")
			continue
		}
		direct, err := uc.DirectCost(ctx, id)
		if err != nil {
			return records, err
		}
		recs, err := uc.AppendEstimate(ctx, []string{id}, EstimateInput{
			DirectCost:  &direct,
			Category:    category,
			Description: description,
		})
		if err != nil {
			return records, err
		}
		records = append(records, recs...)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	return records, nil
}

// RepriceForInventoryItem recalcula el costo directo de todos los menús que usan el insumo.
func (uc *CostingUseCase) RepriceForInventoryItem(ctx context.Context, inventoryItemID, category string) ([]*entity.EstimatedMenuPriceRecord, error) {
	recipes, err := uc.recipeRepo.ListByInventoryItem(ctx, inventoryItemID)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.MenuID)
	}
	if category == "" {
		category = entity.PriceCategoryInventoryChanged
	}
	return uc.CalculateUpdateDirectCost(ctx, ids, category, "")
}

// IndirectCosts suma arriendo, servicios, depreciación de equipos y mano de obra de la ventana.
func (uc *CostingUseCase) IndirectCosts(ctx context.Context, year, numYears int) (*IndirectCostBreakdown, error) {
	if year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	from, to := calc.YearWindow(year, numYears)
	b := &IndirectCostBreakdown{From: from, To: to}

	rents, err := uc.costRepo.ListRent(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, r := range rents {
		b.Rent = b.Rent.Add(r.Total())
	}

	bills, err := uc.costRepo.ListBills(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, bl := range bills {
		b.Bills = b.Bills.Add(bl.Cost)
	}

	equipment, err := uc.costRepo.ListEquipment(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, e := range equipment {
		b.Equipment = b.Equipment.Add(e.MonthlyDepreciation)
	}

	b.Labor, err = uc.EstimatedLaborCost(ctx, from, to)
	if err != nil {
		return nil, err
	}
	b.Total = b.Rent.Add(b.Bills).Add(b.Equipment).Add(b.Labor)
	return b, nil
}

// CalculateIndirectCost recalcula el pozo indirecto y lo aplica a toda la carta.
// Un total <= 0 no se registra y devuelve domain.ErrNothingToReport.
func (uc *CostingUseCase) CalculateIndirectCost(ctx context.Context, year, numYears int, category string) ([]*entity.EstimatedMenuPriceRecord, error) {
	b, err := uc.IndirectCosts(ctx, year, numYears)
	if err != nil {
		return nil, err
	}
	if !b.Total.IsPositive() {
		uc.log.Warn().Int("year", year).Int("num_years", numYears).Msg("costo indirecto sin datos, no se registra")
		return nil, domain.ErrNothingToReport
	}
	if category == "" {
		category = entity.PriceCategoryIndirectCost
	}
	total := b.Total
	return uc.AppendEstimate(ctx, nil, EstimateInput{IndirectCosts: &total, Category: category})
}

// EstimatedLaborCost costo de mano de obra de los turnos con inicio en [from, to).
func (uc *CostingUseCase) EstimatedLaborCost(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	if !from.Before(to) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	shifts, err := uc.costRepo.ListShifts(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	positions := make(map[string]*entity.TargetPositionAndSalary)
	for _, s := range shifts {
		for _, l := range s.Labor {
			if _, ok := positions[l.PositionID]; ok {
				continue
			}
			p, err := uc.costRepo.GetPosition(ctx, l.PositionID)
			if err != nil {
				return decimal.Zero, err
			}
			positions[l.PositionID] = p
		}
	}
	return calc.LaborCost(shifts, positions), nil
}

// CalculateForecast suma los pronósticos de la ventana y los aplica a toda la carta.
func (uc *CostingUseCase) CalculateForecast(ctx context.Context, year, numYears int, category string) ([]*entity.EstimatedMenuPriceRecord, error) {
	if year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	from, to := calc.YearWindow(year, numYears)
	forecasts, err := uc.forecastRepo.ListInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, f := range forecasts {
		total += f.SalesForecast
	}
	if total <= 0 {
		uc.log.Warn().Int("year", year).Msg("pronóstico de ventas sin datos, no se registra")
		return nil, domain.ErrNothingToReport
	}
	if category == "" {
		category = entity.PriceCategoryForecastChanged
	}
	return uc.AppendEstimate(ctx, nil, EstimateInput{SalesForecast: &total, Category: category})
}

// CalculateManualPriceChange fija el precio manual de un menú.
func (uc *CostingUseCase) CalculateManualPriceChange(ctx context.Context, menuID string, newPrice decimal.Decimal, category string) (*entity.EstimatedMenuPriceRecord, error) {
	if newPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	menu, err := uc.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	if category == "" {
		category = entity.PriceCategoryManualPriceChange
	}
	recs, err := uc.AppendEstimate(ctx, []string{menuID}, EstimateInput{ManualPrice: &newPrice, Category: category})
	if err != nil {
		return nil, err
	}
	return recs[0], nil
}

// LatestEstimate último registro de precio del menú (nil si nunca se calculó).
func (uc *CostingUseCase) LatestEstimate(ctx context.Context, menuID string) (*entity.EstimatedMenuPriceRecord, error) {
	return uc.estimateRepo.Latest(ctx, menuID)
}

// LatestAnyEstimate registro más reciente de toda la carta; sirve de base para menús nuevos.
func (uc *CostingUseCase) LatestAnyEstimate(ctx context.Context) (*entity.EstimatedMenuPriceRecord, error) {
	return uc.estimateRepo.LatestAny(ctx)
}

// PriceHistory historial de precios del menú, más recientes primero.
func (uc *CostingUseCase) PriceHistory(ctx context.Context, menuID string, limit int) ([]*entity.EstimatedMenuPriceRecord, error) {
	menu, err := uc.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	return uc.estimateRepo.ListByMenu(ctx, menuID, limit)
}
