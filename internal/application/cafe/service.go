// Package cafe es el orquestador del back-office: une el motor de inventario, el motor
// de costeo y el catálogo, y reacciona a los cambios de receta, precios, fuentes de costo
// y pronósticos disparando los recálculos que correspondan.
package cafe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/application/pricing"
	"github.com/jhoicas/Cafeteria-api/internal/application/usecase"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

// Service fachada única que reciben los handlers HTTP. Se construye una vez en main.
type Service struct {
	valuation *inventory.ValuationUseCase
	costing   *pricing.CostingUseCase
	items     *usecase.InventoryItemUseCase
	menus     *usecase.MenuUseCase
	recipes   *usecase.RecipeUseCase
	suppliers *usecase.SupplierUseCase
	sources   *usecase.CostSourceUseCase
	log       *logger.Logger
}

// Deps dependencias del orquestador.
type Deps struct {
	Valuation *inventory.ValuationUseCase
	Costing   *pricing.CostingUseCase
	Items     *usecase.InventoryItemUseCase
	Menus     *usecase.MenuUseCase
	Recipes   *usecase.RecipeUseCase
	Suppliers *usecase.SupplierUseCase
	Sources   *usecase.CostSourceUseCase
	Log       *logger.Logger
}

// NewService construye la fachada.
func NewService(d Deps) *Service {
	return &Service{
		valuation: d.Valuation,
		costing:   d.Costing,
		items:     d.Items,
		menus:     d.Menus,
		recipes:   d.Recipes,
		suppliers: d.Suppliers,
		sources:   d.Sources,
		log:       d.Log.Named("cafe"),
	}
}

// RecipeLine línea de receta con el nombre del insumo resuelto.
type RecipeLine struct {
	*entity.Recipe
	InventoryItem string
}

// MenuAvailability menú con unidades producibles (nil = la receta no limita).
type MenuAvailability struct {
	Menu            *entity.Menu
	NumberAvailable *int64
	Recipe          []RecipeLine
}

// GetMenuWithAvailability toda la carta con disponibilidad y receta.
func (s *Service) GetMenuWithAvailability(ctx context.Context) ([]MenuAvailability, error) {
	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	out := make([]MenuAvailability, 0, len(menus))
	for _, m := range menus {
		n, err := s.valuation.MenuAvailability(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		recipe, err := s.recipeLines(ctx, m.ID, names)
		if err != nil {
			return nil, err
		}
		out = append(out, MenuAvailability{Menu: m, NumberAvailable: n, Recipe: recipe})
	}
	return out, nil
}

func (s *Service) recipeLines(ctx context.Context, menuID string, names map[string]string) ([]RecipeLine, error) {
	recipes, err := s.recipes.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	lines := make([]RecipeLine, 0, len(recipes))
	for _, r := range recipes {
		name, ok := names[r.InventoryItemID]
		if !ok {
			item, err := s.items.GetByID(ctx, r.InventoryItemID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			if item != nil {
				name = item.Name
			}
			names[r.InventoryItemID] = name
		}
		lines = append(lines, RecipeLine{Recipe: r, InventoryItem: name})
	}
	return lines, nil
}

// GetMenu un menú con su disponibilidad y receta.
func (s *Service) GetMenu(ctx context.Context, id string) (*MenuAvailability, error) {
	m, err := s.menus.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := s.valuation.MenuAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeLines(ctx, id, map[string]string{})
	if err != nil {
		return nil, err
	}
	return &MenuAvailability{Menu: m, NumberAvailable: n, Recipe: recipe}, nil
}

// CreateNewMenuItem crea el menú con su receta y, si llega, su pronóstico de ventas; luego
// calcula el primer registro de precio: costo directo de la receta, pozo indirecto y pronóstico
// tomados del último registro de la carta, margen y precio del request. Un pronóstico nuevo
// cambia el agregado del año, así que se recalcula el pronóstico de toda la carta.
// Si un paso falla después de crear el menú, se deshace lo escrito.
func (s *Service) CreateNewMenuItem(ctx context.Context, in dto.CreateMenuItemRequest) (*entity.Menu, *entity.EstimatedMenuPriceRecord, error) {
	if in.Price.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Forecast != nil && (in.Forecast.Number < 0 || !usecase.ValidRange(in.Forecast.FromDate, in.Forecast.ToDate)) {
		return nil, nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.RecipeItems))
	for _, ri := range in.RecipeItems {
		if ri.AmountUsage.IsNegative() || seen[ri.InventoryItemID] {
			return nil, nil, domain.ErrInvalidInput
		}
		seen[ri.InventoryItemID] = true
		if _, err := s.items.GetByID(ctx, ri.InventoryItemID); err != nil {
			return nil, nil, err
		}
	}

	menu, err := s.menus.Create(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	c := &menuCreation{s: s, menuID: menu.ID}
	for _, ri := range in.RecipeItems {
		if _, err := s.recipes.Create(ctx, menu.ID, dto.CreateRecipeRequest(ri)); err != nil {
			return nil, nil, c.fail(ctx, fmt.Errorf("receta de %s: %w", menu.Name, err))
		}
		c.recipes = append(c.recipes, ri.InventoryItemID)
	}

	input := pricing.EstimateInput{
		ProfitMargin: &in.ProfitMargin,
		ManualPrice:  &in.Price,
		Category:     entity.PriceCategoryNewMenuItem,
		Description:  in.Description,
	}
	if base, err := s.costing.LatestAnyEstimate(ctx); err != nil {
		return nil, nil, c.fail(ctx, err)
	} else if base != nil {
		input.IndirectCosts = &base.EstimatedIndirectCosts
		input.SalesForecast = &base.SalesForecast
	}
	if in.Forecast != nil {
		f, err := s.sources.CreateSalesForecast(ctx, dto.CreateSalesForecastRequest{
			FromDate:      in.Forecast.FromDate,
			ToDate:        in.Forecast.ToDate,
			SalesForecast: in.Forecast.Number,
			Description:   "Alta de " + menu.Name,
		})
		if err != nil {
			return nil, nil, c.fail(ctx, err)
		}
		c.forecastID = f.ID
	}
	direct, err := s.costing.DirectCost(ctx, menu.ID)
	if err != nil {
		return nil, nil, c.fail(ctx, err)
	}
	input.DirectCost = &direct

	if _, err := s.costing.AppendEstimate(ctx, []string{menu.ID}, input); err != nil {
		return nil, nil, c.fail(ctx, err)
	}
	if in.Forecast != nil {
		rc, err := s.OnForecastChanged(ctx, in.Forecast.FromDate.Year())
		if err != nil {
			return nil, nil, c.fail(ctx, err)
		}
		if rc.Note != "" {
			s.log.Warn().Str("menu_id", menu.ID).Str("note", rc.Note).Msg("pronóstico del alta sin recálculo")
		}
	}
	latest, err := s.costing.LatestEstimate(ctx, menu.ID)
	if err != nil {
		return nil, nil, c.fail(ctx, err)
	}
	menu, err = s.menus.GetByID(ctx, menu.ID)
	if err != nil {
		return nil, nil, c.fail(ctx, err)
	}
	s.log.Info().Str("menu_id", menu.ID).Str("name", menu.Name).Int("recipe_lines", len(in.RecipeItems)).Msg("menú creado")
	return menu, latest, nil
}

// menuCreation recuerda lo escrito durante el alta de un menú.
type menuCreation struct {
	s          *Service
	menuID     string
	recipes    []string
	forecastID string
}

// fail deshace el alta y devuelve la causa unida a los errores de compensación.
func (c *menuCreation) fail(ctx context.Context, cause error) error {
	c.s.log.Warn().Err(cause).Str("menu_id", c.menuID).Msg("alta de menú fallida, deshaciendo")
	// la compensación no debe depender de un ctx ya cancelado
	return errors.Join(cause, c.compensate(context.WithoutCancel(ctx)))
}

// compensate borra en orden inverso: pronóstico, líneas de receta y menú.
func (c *menuCreation) compensate(ctx context.Context) error {
	var errs []error
	if c.forecastID != "" {
		if err := c.s.sources.DeleteSalesForecast(ctx, c.forecastID); err != nil {
			errs = append(errs, fmt.Errorf("borrar pronóstico %s: %w", c.forecastID, err))
		}
	}
	for i := len(c.recipes) - 1; i >= 0; i-- {
		if err := c.s.recipes.Delete(ctx, c.menuID, c.recipes[i]); err != nil {
			errs = append(errs, fmt.Errorf("borrar receta %s: %w", c.recipes[i], err))
		}
	}
	if err := c.s.menus.Delete(ctx, c.menuID); err != nil {
		errs = append(errs, fmt.Errorf("borrar menú %s: %w", c.menuID, err))
	}
	for _, err := range errs {
		c.s.log.Error().Err(err).Str("menu_id", c.menuID).Msg("compensación de alta de menú")
	}
	return errors.Join(errs...)
}

// UpdateMenuItem edita el menú. Si llega precio o margen agrega un registro de precio
// con la categoría indicada ("Manual Price Change" por defecto).
func (s *Service) UpdateMenuItem(ctx context.Context, id string, in dto.UpdateMenuItemRequest) (*entity.Menu, error) {
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.menus.Update(ctx, id, in); err != nil {
		return nil, err
	}
	category := in.PriceChangeCategory
	if category == "" {
		category = entity.PriceCategoryManualPriceChange
	}
	switch {
	case in.Price != nil && in.ProfitMargin == nil:
		if _, err := s.costing.CalculateManualPriceChange(ctx, id, *in.Price, category); err != nil {
			return nil, err
		}
	case in.ProfitMargin != nil:
		if _, err := s.costing.AppendEstimate(ctx, []string{id}, pricing.EstimateInput{
			ManualPrice:  in.Price,
			ProfitMargin: in.ProfitMargin,
			Category:     category,
		}); err != nil {
			return nil, err
		}
	}
	return s.menus.GetByID(ctx, id)
}
