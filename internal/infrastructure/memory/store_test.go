package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestInventoryItemRepo_NombreUnicoNormalizado(t *testing.T) {
	ctx := context.Background()
	repo := New().InventoryItems()

	require.NoError(t, repo.Create(ctx, &entity.InventoryItem{Name: "Leche Entera"}))
	err := repo.Create(ctx, &entity.InventoryItem{Name: "  leche   ENTERA"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := repo.GetByName(ctx, "LECHE entera")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Leche Entera", found.Name)
}

func TestStockChangeRepo_CheckpointMasReciente(t *testing.T) {
	ctx := context.Background()
	repo := New().StockChanges()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.StockChangeRecord{InventoryItemID: "i1", ManualReport: dec("10"), Date: base}))
	require.NoError(t, repo.Create(ctx, &entity.StockChangeRecord{InventoryItemID: "i1", ChangeAmount: dec("5"), Date: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.StockChangeRecord{InventoryItemID: "i1", ManualReport: dec("12"), Date: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.StockChangeRecord{InventoryItemID: "i2", ManualReport: dec("99"), Date: base.Add(3 * time.Hour)}))

	cp, err := repo.LatestCheckpoint(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.True(t, cp.ManualReport.Equal(decimal.NewFromInt(12)))

	list, err := repo.ListByItem(ctx, "i1", nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].Date.After(list[2].Date))
}

func TestPriceEstimateRepo_OrdenPorFechaYCreacion(t *testing.T) {
	ctx := context.Background()
	repo := New().PriceEstimates()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.EstimatedMenuPriceRecord{MenuID: "m1", FromDate: day, Description: "a"}))
	require.NoError(t, repo.Create(ctx, &entity.EstimatedMenuPriceRecord{MenuID: "m1", FromDate: day, Description: "b"}))

	latest, err := repo.Latest(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.Description)

	n, err := repo.CountByMenu(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	none, err := repo.Latest(ctx, "otro")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCostSourceRepo_VentanaSemiabierta(t *testing.T) {
	ctx := context.Background()
	repo := New().CostSources()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	require.NoError(t, repo.CreateRent(ctx, &entity.Rent{Rent: decimal.NewFromInt(100), FromDate: from}))
	require.NoError(t, repo.CreateRent(ctx, &entity.Rent{Rent: decimal.NewFromInt(200), FromDate: to}))
	require.NoError(t, repo.CreateEquipment(ctx, &entity.Equipment{
		PurchaseDate:   from.AddDate(-2, 0, 0),
		ExpirationDate: from.AddDate(0, 6, 0),
	}))
	require.NoError(t, repo.CreateEquipment(ctx, &entity.Equipment{
		PurchaseDate:   from.AddDate(-3, 0, 0),
		ExpirationDate: from.AddDate(-1, 0, 0),
	}))

	rents, err := repo.ListRent(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, rents, 1)
	assert.True(t, rents[0].Rent.Equal(decimal.NewFromInt(100)))

	eq, err := repo.ListEquipment(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, eq, 1)
}

func TestMenuRepo_DeleteBorraRecetaEHistorial(t *testing.T) {
	ctx := context.Background()
	st := New()
	m := &entity.Menu{Name: "Latte"}
	require.NoError(t, st.Menus().Create(ctx, m))
	require.NoError(t, st.Recipes().Create(ctx, &entity.Recipe{MenuID: m.ID, InventoryItemID: "leche", AmountUsage: decimal.NewFromInt(200)}))
	require.NoError(t, st.PriceEstimates().Create(ctx, &entity.EstimatedMenuPriceRecord{MenuID: m.ID}))

	require.NoError(t, st.Menus().Delete(ctx, m.ID))
	assert.ErrorIs(t, st.Menus().Delete(ctx, m.ID), domain.ErrNotFound)

	recipes, err := st.Recipes().ListByMenu(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	n, err := st.PriceEstimates().CountByMenu(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// el nombre queda libre
	require.NoError(t, st.Menus().Create(ctx, &entity.Menu{Name: "Latte"}))
}
