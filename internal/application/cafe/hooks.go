package cafe

import (
	"context"
	"errors"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// Recalc resultado de un recálculo disparado por un evento.
// Note explica por qué no se registró nada (p. ej. ventana sin datos).
type Recalc struct {
	Repriced int
	Note     string
}

// OnRecipeChanged recalcula el costo directo del menú dueño de la receta.
func (s *Service) OnRecipeChanged(ctx context.Context, menuID string) (Recalc, error) {
	recs, err := s.costing.CalculateUpdateDirectCost(ctx, []string{menuID}, entity.PriceCategoryRecipeChange, "")
	if err != nil {
		s.log.Error().Err(err).Str("menu_id", menuID).Msg("recálculo por cambio de receta fallido")
		return Recalc{}, err
	}
	return Recalc{Repriced: len(recs)}, nil
}

// OnInventoryPriceChanged recalcula el costo directo de todo menú que use el insumo.
func (s *Service) OnInventoryPriceChanged(ctx context.Context, inventoryItemID string) (Recalc, error) {
	recs, err := s.costing.RepriceForInventoryItem(ctx, inventoryItemID, entity.PriceCategoryInventoryChanged)
	if err != nil {
		s.log.Error().Err(err).Str("inventory_item_id", inventoryItemID).Msg("recálculo por cambio de precio de insumo fallido")
		return Recalc{}, err
	}
	return Recalc{Repriced: len(recs)}, nil
}

// OnIndirectSourceChanged recalcula el pozo indirecto del año y lo aplica a toda la carta.
// Una ventana sin costos no es un error para quien agregó la fuente.
func (s *Service) OnIndirectSourceChanged(ctx context.Context, year int, category string) (Recalc, error) {
	recs, err := s.costing.CalculateIndirectCost(ctx, year, 1, category)
	if errors.Is(err, domain.ErrNothingToReport) {
		return Recalc{Note: err.Error()}, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int("year", year).Str("category", category).Msg("recálculo de costo indirecto fallido")
		return Recalc{}, err
	}
	return Recalc{Repriced: len(recs)}, nil
}

// OnForecastChanged recalcula el pronóstico agregado del año y lo aplica a toda la carta.
func (s *Service) OnForecastChanged(ctx context.Context, year int) (Recalc, error) {
	recs, err := s.costing.CalculateForecast(ctx, year, 1, entity.PriceCategoryForecastChanged)
	if errors.Is(err, domain.ErrNothingToReport) {
		return Recalc{Note: err.Error()}, nil
	}
	if err != nil {
		s.log.Error().Err(err).Int("year", year).Msg("recálculo de pronóstico fallido")
		return Recalc{}, err
	}
	return Recalc{Repriced: len(recs)}, nil
}
