package cafe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/application/pricing"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/lock"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func newService(st *memory.Store) *Service {
	return New(Repositories{
		TxRunner:    st.TxRunner(),
		Items:       st.InventoryItems(),
		Ledger:      st.StockChanges(),
		Menus:       st.Menus(),
		Recipes:     st.Recipes(),
		Estimates:   st.PriceEstimates(),
		Suppliers:   st.Suppliers(),
		CostSources: st.CostSources(),
		Forecasts:   st.SalesForecasts(),
	}, lock.NewLocalLocker(), logger.Nop())
}

// seedBase deja un registro previo en la carta con pozo indirecto 2000 y pronóstico 1000.
func seedBase(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	m, err := svc.menus.Create(ctx, dto.CreateMenuItemRequest{Name: "Agua"})
	require.NoError(t, err)
	forecast := int64(1000)
	_, err = svc.costing.AppendEstimate(ctx, []string{m.ID}, pricing.EstimateInput{
		IndirectCosts: dp("2000"),
		SalesForecast: &forecast,
		ManualPrice:   dp("1"),
	})
	require.NoError(t, err)
}

func TestService_CreateNewMenuItem(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	seedBase(t, svc)

	coffee, err := svc.AddInventoryItem(ctx, dto.CreateInventoryItemRequest{Name: "Café", Unit: "g", PricePerUnit: d("0.05")})
	require.NoError(t, err)

	menu, est, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{
		Name:         "Espresso",
		Size:         "S",
		RecipeItems:  []dto.RecipeItemRequest{{InventoryItemID: coffee.ID, AmountUsage: d("18")}},
		Price:        d("5"),
		ProfitMargin: d("0.3"),
	})
	require.NoError(t, err)
	require.NotNil(t, est)

	assert.Equal(t, entity.PriceCategoryNewMenuItem, est.Category)
	assert.True(t, est.DirectCost.Equal(d("0.9")))
	assert.True(t, est.EstimatedIndirectCosts.Equal(d("2000")))
	assert.Equal(t, int64(1000), est.SalesForecast)
	require.NotNil(t, est.EstimatedPrice)
	// (0.9 + 2000/1000) × 1.3
	assert.True(t, est.EstimatedPrice.Equal(d("3.77")))

	assert.True(t, menu.CurrentPrice.Equal(d("5")))
	require.NotNil(t, menu.SuggestedPrice)
	assert.True(t, menu.SuggestedPrice.Equal(d("3.77")))
}

func TestService_CreateNewMenuItemValidaAntesDeEscribir(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := newService(st)

	_, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{
		Name:        "Latte",
		RecipeItems: []dto.RecipeItemRequest{{InventoryItemID: "no-existe", AmountUsage: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	menus, err := svc.menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestService_CreateNewMenuItemRecalculaPronosticoDeLaCarta(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	window := func(n int64) *dto.ForecastWindow {
		return &dto.ForecastWindow{
			Number:   n,
			FromDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		}
	}

	a, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{Name: "Americano", Price: d("4"), Forecast: window(500)})
	require.NoError(t, err)
	b, estB, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{Name: "Mocha", Price: d("6"), Forecast: window(200)})
	require.NoError(t, err)
	assert.Equal(t, int64(700), estB.SalesForecast)

	for _, id := range []string{a.ID, b.ID} {
		latest, err := svc.costing.LatestEstimate(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(700), latest.SalesForecast)
		assert.Equal(t, entity.PriceCategoryForecastChanged, latest.Category)
	}

	// el alta y el alta de pronóstico por separado llegan al mismo agregado
	recs, err := svc.CalculateForecast(ctx, 2026, 1, "")
	require.NoError(t, err)
	for _, r := range recs {
		assert.Equal(t, int64(700), r.SalesForecast)
	}
}

func TestService_CreateNewMenuItemPronosticoSinInicio(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	in := dto.CreateMenuItemRequest{
		Name:     "Latte",
		Price:    d("5"),
		Forecast: &dto.ForecastWindow{Number: 10, ToDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	_, _, err := svc.CreateNewMenuItem(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	menus, err := svc.menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)

	in.Forecast.FromDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err = svc.CreateNewMenuItem(ctx, in)
	assert.NoError(t, err)
}

// failingEstimates rechaza Create mientras fail esté activo.
type failingEstimates struct {
	repository.PriceEstimateRepository
	fail bool
}

func (r *failingEstimates) Create(ctx context.Context, rec *entity.EstimatedMenuPriceRecord) error {
	if r.fail {
		return errors.New("conexión perdida")
	}
	return r.PriceEstimateRepository.Create(ctx, rec)
}

func TestService_CreateNewMenuItemFallidoNoDejaRastros(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	estimates := &failingEstimates{PriceEstimateRepository: st.PriceEstimates(), fail: true}
	svc := New(Repositories{
		TxRunner:    st.TxRunner(),
		Items:       st.InventoryItems(),
		Ledger:      st.StockChanges(),
		Menus:       st.Menus(),
		Recipes:     st.Recipes(),
		Estimates:   estimates,
		Suppliers:   st.Suppliers(),
		CostSources: st.CostSources(),
		Forecasts:   st.SalesForecasts(),
	}, lock.NewLocalLocker(), logger.Nop())

	coffee, err := svc.AddInventoryItem(ctx, dto.CreateInventoryItemRequest{Name: "Café", Unit: "g", PricePerUnit: d("0.05")})
	require.NoError(t, err)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in := dto.CreateMenuItemRequest{
		Name:        "Espresso",
		Price:       d("3"),
		RecipeItems: []dto.RecipeItemRequest{{InventoryItemID: coffee.ID, AmountUsage: d("18")}},
		Forecast:    &dto.ForecastWindow{Number: 300, FromDate: from, ToDate: from.AddDate(1, 0, 0)},
	}

	_, _, err = svc.CreateNewMenuItem(ctx, in)
	require.Error(t, err)

	menus, err := svc.menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)
	recipes, err := st.Recipes().ListByInventoryItem(ctx, coffee.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	forecasts, err := st.SalesForecasts().ListInWindow(ctx, from, from.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, forecasts)

	estimates.fail = false
	menu, est, err := svc.CreateNewMenuItem(ctx, in)
	require.NoError(t, err, "el reintento no choca con un menú a medio crear")
	assert.Equal(t, "Espresso", menu.Name)
	assert.Equal(t, int64(300), est.SalesForecast)
}

func TestService_CambioDeRecetaRecalcula(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	coffee, err := svc.AddInventoryItem(ctx, dto.CreateInventoryItemRequest{Name: "Café", Unit: "g", PricePerUnit: d("0.05")})
	require.NoError(t, err)
	menu, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{
		Name:        "Espresso",
		RecipeItems: []dto.RecipeItemRequest{{InventoryItemID: coffee.ID, AmountUsage: d("18")}},
		Price:       d("3"),
	})
	require.NoError(t, err)

	_, rc, err := svc.UpdateRecipe(ctx, menu.ID, coffee.ID, dto.UpdateRecipeRequest{AmountUsage: dp("20")})
	require.NoError(t, err)
	assert.Equal(t, 1, rc.Repriced)

	latest, err := svc.costing.LatestEstimate(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PriceCategoryRecipeChange, latest.Category)
	assert.True(t, latest.DirectCost.Equal(d("1")))
	assert.True(t, latest.ManualPrice.Equal(d("3")))

	// sin cambio de consumo no hay registro nuevo
	writer := "Ana"
	_, rc, err = svc.UpdateRecipe(ctx, menu.ID, coffee.ID, dto.UpdateRecipeRequest{Writer: &writer})
	require.NoError(t, err)
	assert.Zero(t, rc.Repriced)

	rc, err = svc.DeleteRecipe(ctx, menu.ID, coffee.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rc.Repriced)
	latest, err = svc.costing.LatestEstimate(ctx, menu.ID)
	require.NoError(t, err)
	// costo cero cuenta como no informado: se arrastra el anterior
	assert.True(t, latest.DirectCost.Equal(d("1")))
}

func TestService_CambioDePrecioDeInsumoRecalculaMenus(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	milk, err := svc.AddInventoryItem(ctx, dto.CreateInventoryItemRequest{Name: "Leche", Unit: "ml", PricePerUnit: d("0.002")})
	require.NoError(t, err)
	for _, name := range []string{"Latte", "Capuchino"} {
		_, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{
			Name:        name,
			RecipeItems: []dto.RecipeItemRequest{{InventoryItemID: milk.ID, AmountUsage: d("200")}},
		})
		require.NoError(t, err)
	}

	_, rc, err := svc.UpdateInventoryItem(ctx, milk.ID, dto.UpdateInventoryItemRequest{PricePerUnit: dp("0.003")})
	require.NoError(t, err)
	assert.Equal(t, 2, rc.Repriced)

	menus, err := svc.menus.List(ctx)
	require.NoError(t, err)
	for _, m := range menus {
		latest, err := svc.costing.LatestEstimate(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PriceCategoryInventoryChanged, latest.Category)
		assert.True(t, latest.DirectCost.Equal(d("0.6")))
	}
}

func TestService_ReceiveSupplyConCostoRecalcula(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	cacao, err := svc.AddInventoryItem(ctx, dto.CreateInventoryItemRequest{
		Name:         "Cacao",
		Unit:         "g",
		PricePerUnit: d("0.10"),
		InitialStock: dp("100"),
	})
	require.NoError(t, err)
	assert.True(t, cacao.CurrentStock.Equal(d("100")))

	menu, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{
		Name:        "Chocolate",
		RecipeItems: []dto.RecipeItemRequest{{InventoryItemID: cacao.ID, AmountUsage: d("10")}},
	})
	require.NoError(t, err)

	item, rc, err := svc.ReceiveSupply(ctx, cacao.ID, inventory.MovementInput{Quantity: d("100")}, dp("0.20"))
	require.NoError(t, err)
	assert.True(t, item.PricePerUnit.Equal(d("0.15")))
	assert.Equal(t, 1, rc.Repriced)

	latest, err := svc.costing.LatestEstimate(ctx, menu.ID)
	require.NoError(t, err)
	assert.True(t, latest.DirectCost.Equal(d("1.5")))
}

func TestService_AltaDeFuentesDisparaRecalculo(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	m, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{Name: "Té", Price: d("2")})
	require.NoError(t, err)
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, rc, err := svc.AddRent(ctx, dto.CreateRentRequest{Name: "Local", Rent: d("1200"), FromDate: jan, ToDate: jan.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, rc.Repriced)
	latest, err := svc.costing.LatestEstimate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PriceCategoryRentChanged, latest.Category)
	assert.True(t, latest.EstimatedIndirectCosts.Equal(d("1200")))

	// un pronóstico en cero no deja nada que reportar; no es error
	_, rc, err = svc.AddSalesForecast(ctx, dto.CreateSalesForecastRequest{FromDate: jan, ToDate: jan.AddDate(0, 6, 0)})
	require.NoError(t, err)
	assert.Zero(t, rc.Repriced)
	assert.NotEmpty(t, rc.Note)

	_, rc, err = svc.AddSalesForecast(ctx, dto.CreateSalesForecastRequest{FromDate: jan, ToDate: jan.AddDate(0, 6, 0), SalesForecast: 600})
	require.NoError(t, err)
	assert.Equal(t, 1, rc.Repriced)
	latest, err = svc.costing.LatestEstimate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), latest.SalesForecast)
	require.NotNil(t, latest.EstimatedPrice)
	assert.True(t, latest.EstimatedPrice.Equal(d("2")))
}

func TestService_UpdateMenuItemPrecioManual(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	m, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{Name: "Mocca", Price: d("4")})
	require.NoError(t, err)

	updated, err := svc.UpdateMenuItem(ctx, m.ID, dto.UpdateMenuItemRequest{Price: dp("4.5")})
	require.NoError(t, err)
	assert.True(t, updated.CurrentPrice.Equal(d("4.5")))

	latest, err := svc.costing.LatestEstimate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PriceCategoryManualPriceChange, latest.Category)

	_, err = svc.UpdateMenuItem(ctx, m.ID, dto.UpdateMenuItemRequest{ProfitMargin: dp("0.4"), PriceChangeCategory: "Promo"})
	require.NoError(t, err)
	latest, err = svc.costing.LatestEstimate(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Promo", latest.Category)
	assert.True(t, latest.ProfitMargin.Equal(d("0.4")))
	assert.True(t, latest.ManualPrice.Equal(d("4.5")))
}

func TestService_VentaSinStockDetallaFaltante(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())
	beans, err := svc.AddInventoryItem(ctx, dto.CreateInventoryItemRequest{Name: "Café", Unit: "g", InitialStock: dp("30")})
	require.NoError(t, err)
	m, _, err := svc.CreateNewMenuItem(ctx, dto.CreateMenuItemRequest{
		Name:        "Doble",
		RecipeItems: []dto.RecipeItemRequest{{InventoryItemID: beans.ID, AmountUsage: d("18")}},
	})
	require.NoError(t, err)

	view, err := svc.GetMenu(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, view.NumberAvailable)
	assert.Equal(t, int64(1), *view.NumberAvailable)
	require.Len(t, view.Recipe, 1)
	assert.Equal(t, "Café", view.Recipe[0].InventoryItem)

	_, err = svc.DeductStockByMenu(ctx, m.ID, inventory.MovementInput{Quantity: d("2"), ForeignID: "venta-1"})
	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.True(t, short.Missing["Café"].Equal(d("6")))

	res, err := svc.DeductStockByMenu(ctx, m.ID, inventory.MovementInput{Quantity: d("1"), ForeignID: "venta-2"})
	require.NoError(t, err)
	assert.True(t, res.Stock[beans.ID].Equal(d("12")))

	recs, err := svc.ListLedgerByForeignID(ctx, "venta-2")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
