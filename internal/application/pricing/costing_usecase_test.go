package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func newCosting(st *memory.Store) *CostingUseCase {
	return NewCostingUseCase(st.Menus(), st.Recipes(), st.InventoryItems(), st.PriceEstimates(),
		st.CostSources(), st.SalesForecasts(), logger.Nop())
}

func seedMenu(t *testing.T, st *memory.Store, name string) *entity.Menu {
	t.Helper()
	m := &entity.Menu{Name: name, Size: "M"}
	require.NoError(t, st.Menus().Create(context.Background(), m))
	return m
}

func TestAppendEstimate_ArrastraCamposNoInformados(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	m := seedMenu(t, st, "Latte")

	forecast := int64(1000)
	_, err := uc.AppendEstimate(ctx, []string{m.ID}, EstimateInput{
		DirectCost:    dp("1.5"),
		IndirectCosts: dp("2000"),
		SalesForecast: &forecast,
		ProfitMargin:  dp("0.3"),
		ManualPrice:   dp("5"),
		Category:      entity.PriceCategoryNewMenuItem,
	})
	require.NoError(t, err)

	recs, err := uc.AppendEstimate(ctx, []string{m.ID}, EstimateInput{DirectCost: dp("2"), Category: entity.PriceCategoryRecipeChange})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, int64(1000), rec.SalesForecast)
	assert.True(t, rec.ProfitMargin.Equal(d("0.3")))
	assert.True(t, rec.EstimatedIndirectCosts.Equal(d("2000")))
	assert.True(t, rec.ManualPrice.Equal(d("5")))
	assert.True(t, rec.DirectCost.Equal(d("2")))
	require.NotNil(t, rec.EstimatedPrice)
	assert.True(t, rec.EstimatedPrice.Equal(d("5.2")))

	// cero cuenta como no informado
	recs, err = uc.AppendEstimate(ctx, []string{m.ID}, EstimateInput{DirectCost: dp("0")})
	require.NoError(t, err)
	assert.True(t, recs[0].DirectCost.Equal(d("2")))
}

func TestAppendEstimate_FormulaYCacheDelMenu(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	m := seedMenu(t, st, "Capuchino")

	forecast := int64(1000)
	recs, err := uc.AppendEstimate(ctx, []string{m.ID}, EstimateInput{
		DirectCost:    dp("1.5"),
		IndirectCosts: dp("2000"),
		SalesForecast: &forecast,
		ProfitMargin:  dp("0.3"),
		ManualPrice:   dp("4.8"),
	})
	require.NoError(t, err)
	require.NotNil(t, recs[0].EstimatedPrice)
	assert.InDelta(t, 4.55, recs[0].EstimatedPrice.InexactFloat64(), 0.01)

	got, err := st.Menus().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.Equal(d("4.8")))
	require.NotNil(t, got.SuggestedPrice)
	assert.True(t, got.SuggestedPrice.Equal(*recs[0].EstimatedPrice))
}

func TestAppendEstimate_SinPronosticoNoHaySugerencia(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	m := seedMenu(t, st, "Té")

	recs, err := uc.AppendEstimate(ctx, []string{m.ID}, EstimateInput{DirectCost: dp("1"), ProfitMargin: dp("0.5"), ManualPrice: dp("3")})
	require.NoError(t, err)
	assert.Nil(t, recs[0].EstimatedPrice)

	got, _ := st.Menus().GetByID(ctx, m.ID)
	assert.Nil(t, got.SuggestedPrice)
	assert.True(t, got.CurrentPrice.Equal(d("3")))
}

func TestCalculateUpdateDirectCost_CambioDeReceta(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	m := seedMenu(t, st, "Espresso")
	coffee := &entity.InventoryItem{Name: "Café", PricePerUnit: d("0.05")}
	require.NoError(t, st.InventoryItems().Create(ctx, coffee))
	require.NoError(t, st.Recipes().Create(ctx, &entity.Recipe{MenuID: m.ID, InventoryItemID: coffee.ID, AmountUsage: d("18")}))

	recs, err := uc.CalculateUpdateDirectCost(ctx, []string{m.ID}, entity.PriceCategoryRecipeChange, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.90, recs[0].DirectCost.InexactFloat64(), 0.001)

	require.NoError(t, st.Recipes().Update(ctx, &entity.Recipe{MenuID: m.ID, InventoryItemID: coffee.ID, AmountUsage: d("20")}))
	recs, err = uc.CalculateUpdateDirectCost(ctx, []string{m.ID}, entity.PriceCategoryRecipeChange, "")
	require.NoError(t, err)
	assert.InDelta(t, 1.00, recs[0].DirectCost.InexactFloat64(), 0.001)
	assert.Equal(t, entity.PriceCategoryRecipeChange, recs[0].Category)
}

func TestCalculateUpdateDirectCost_SinMenus(t *testing.T) {
	uc := newCosting(memory.New())
	_, err := uc.CalculateUpdateDirectCost(context.Background(), nil, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CalculateUpdateDirectCost(context.Background(), []string{"no-existe"}, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalculateIndirectCost_SinDatosNoEscribe(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	a := seedMenu(t, st, "A")
	seedMenu(t, st, "B")

	_, err := uc.CalculateIndirectCost(ctx, 2024, 1, "")
	assert.ErrorIs(t, err, domain.ErrNothingToReport)
	n, err := st.PriceEstimates().CountByMenu(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCalculateIndirectCost_SumaFuentesYAplicaATodos(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	a := seedMenu(t, st, "A")
	b := seedMenu(t, st, "B")
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cs := st.CostSources()
	require.NoError(t, cs.CreateRent(ctx, &entity.Rent{Rent: d("1000"), Mortgage: d("500"), MortgagePercentageToRent: d("0.5"), FromDate: jan}))
	require.NoError(t, cs.CreateBills(ctx, &entity.EstimatedBills{Cost: d("200"), FromDate: jan.AddDate(0, 2, 0)}))
	require.NoError(t, cs.CreateEquipment(ctx, &entity.Equipment{MonthlyDepreciation: d("50"), PurchaseDate: jan.AddDate(-1, 0, 0), ExpirationDate: jan.AddDate(2, 0, 0)}))
	pos := &entity.TargetPositionAndSalary{Name: "Barista", MonthlyHours: d("160"), MonthlyPayment: d("1600")}
	require.NoError(t, cs.CreatePosition(ctx, pos))
	start := jan.AddDate(0, 0, 10).Add(8 * time.Hour)
	require.NoError(t, cs.CreateShift(ctx, &entity.Shift{
		FromDate: start,
		ToDate:   start.Add(8 * time.Hour),
		Labor:    []entity.EstimatedLabor{{PositionID: pos.ID, NumberOfStaff: 2}},
	}))

	breakdown, err := uc.IndirectCosts(ctx, 2024, 1)
	require.NoError(t, err)
	assert.True(t, breakdown.Rent.Equal(d("1250")))
	assert.True(t, breakdown.Labor.Equal(d("160")))
	assert.True(t, breakdown.Total.Equal(d("1660")))

	recs, err := uc.CalculateIndirectCost(ctx, 2024, 1, entity.PriceCategoryRentChanged)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	for _, id := range []string{a.ID, b.ID} {
		latest, err := uc.LatestEstimate(ctx, id)
		require.NoError(t, err)
		assert.True(t, latest.EstimatedIndirectCosts.Equal(d("1660")))
		assert.Equal(t, entity.PriceCategoryRentChanged, latest.Category)
	}
}

func TestCalculateForecast(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	m := seedMenu(t, st, "Mocca")

	_, err := uc.CalculateForecast(ctx, 2024, 1, "")
	assert.ErrorIs(t, err, domain.ErrNothingToReport)

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SalesForecasts().Create(ctx, &entity.SalesForecast{FromDate: jan, ToDate: jan.AddDate(0, 6, 0), SalesForecast: 400}))
	require.NoError(t, st.SalesForecasts().Create(ctx, &entity.SalesForecast{FromDate: jan.AddDate(0, 6, 0), ToDate: jan.AddDate(1, 0, 0), SalesForecast: 600}))
	require.NoError(t, st.SalesForecasts().Create(ctx, &entity.SalesForecast{FromDate: jan.AddDate(1, 0, 0), SalesForecast: 9999}))

	recs, err := uc.CalculateForecast(ctx, 2024, 1, "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, m.ID, recs[0].MenuID)
	assert.Equal(t, int64(1000), recs[0].SalesForecast)
	assert.Equal(t, entity.PriceCategoryForecastChanged, recs[0].Category)
}

func TestCalculateManualPriceChange(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := newCosting(st)
	m := seedMenu(t, st, "Chocolate")

	rec, err := uc.CalculateManualPriceChange(ctx, m.ID, d("6.5"), "")
	require.NoError(t, err)
	assert.Equal(t, entity.PriceCategoryManualPriceChange, rec.Category)

	got, _ := st.Menus().GetByID(ctx, m.ID)
	assert.True(t, got.CurrentPrice.Equal(d("6.5")))

	_, err = uc.CalculateManualPriceChange(ctx, "no-existe", d("1"), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CalculateManualPriceChange(ctx, m.ID, d("-1"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	history, err := uc.PriceHistory(ctx, m.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
