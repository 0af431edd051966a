package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/memory"
)

func TestMenuUseCase_NombreYTamanoUnicos(t *testing.T) {
	ctx := context.Background()
	uc := NewMenuUseCase(memory.New().Menus())

	_, err := uc.Create(ctx, dto.CreateMenuItemRequest{Name: "Latte", Size: "Grande", ValueAddedTax: decimal.RequireFromString("0.19")})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateMenuItemRequest{Name: "  LATTE ", Size: "grande"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	other, err := uc.Create(ctx, dto.CreateMenuItemRequest{Name: "Latte", Size: "Pequeño"})
	require.NoError(t, err)
	assert.True(t, other.Serving)

	grande := "Grande"
	_, err = uc.Update(ctx, other.ID, dto.UpdateMenuItemRequest{Size: &grande})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMenuUseCase_IVAFueraDeRango(t *testing.T) {
	uc := NewMenuUseCase(memory.New().Menus())
	_, err := uc.Create(context.Background(), dto.CreateMenuItemRequest{Name: "Té", ValueAddedTax: decimal.RequireFromString("1.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryItemUseCase_NombreUnicoYCambioDePrecio(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := NewInventoryItemUseCase(st.InventoryItems(), st.Suppliers(), st.Recipes())

	item, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "Leche  Entera", Unit: "ml", PricePerUnit: decimal.RequireFromString("0.002")})
	require.NoError(t, err)
	assert.Equal(t, "Leche Entera", item.Name)

	_, err = uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "leche entera", Unit: "ml"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "Azúcar", Unit: "g", SupplierID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	same := decimal.RequireFromString("0.002")
	_, changed, err := uc.Update(ctx, item.ID, dto.UpdateInventoryItemRequest{PricePerUnit: &same})
	require.NoError(t, err)
	assert.False(t, changed)

	newPrice := decimal.RequireFromString("0.003")
	_, changed, err = uc.Update(ctx, item.ID, dto.UpdateInventoryItemRequest{PricePerUnit: &newPrice})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestRecipeUseCase_ParUnicoYConsumoNoNegativo(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	menus := NewMenuUseCase(st.Menus())
	items := NewInventoryItemUseCase(st.InventoryItems(), st.Suppliers(), st.Recipes())
	uc := NewRecipeUseCase(st.Recipes(), st.Menus(), st.InventoryItems())

	m, err := menus.Create(ctx, dto.CreateMenuItemRequest{Name: "Espresso"})
	require.NoError(t, err)
	it, err := items.Create(ctx, dto.CreateInventoryItemRequest{Name: "Café", Unit: "g"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, m.ID, dto.CreateRecipeRequest{InventoryItemID: it.ID, AmountUsage: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, m.ID, dto.CreateRecipeRequest{InventoryItemID: it.ID, AmountUsage: decimal.NewFromInt(18)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, m.ID, dto.CreateRecipeRequest{InventoryItemID: it.ID, AmountUsage: decimal.NewFromInt(20)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.ErrorIs(t, items.Delete(ctx, it.ID), domain.ErrInvalidInput)

	amount := decimal.NewFromInt(20)
	_, changed, err := uc.Update(ctx, m.ID, it.ID, dto.UpdateRecipeRequest{AmountUsage: &amount})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestCostSourceUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := NewCostSourceUseCase(st.CostSources(), st.SalesForecasts())
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.CreateRent(ctx, dto.CreateRentRequest{Name: "Local", FromDate: jan, ToDate: jan})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateShift(ctx, dto.CreateShiftRequest{
		Name:     "Mañana",
		FromDate: jan.Add(8 * time.Hour),
		ToDate:   jan.Add(16 * time.Hour),
		Labor:    []dto.LaborRequest{{PositionID: "no-existe", NumberOfStaff: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pos, err := uc.CreatePosition(ctx, dto.CreatePositionRequest{Name: "Barista", MonthlyHours: decimal.NewFromInt(160), MonthlyPayment: decimal.NewFromInt(1600)})
	require.NoError(t, err)
	_, err = uc.CreateShift(ctx, dto.CreateShiftRequest{
		Name:     "Mañana",
		FromDate: jan.Add(8 * time.Hour),
		ToDate:   jan.Add(16 * time.Hour),
		Labor:    []dto.LaborRequest{{PositionID: pos.ID, NumberOfStaff: 1, ExtraHours: decimal.NewFromInt(9)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
