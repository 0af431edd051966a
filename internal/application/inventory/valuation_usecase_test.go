package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/lock"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *memory.Store
	uc    *ValuationUseCase
}

func newFixture(t *testing.T, ledger repository.StockChangeRepository) *fixture {
	t.Helper()
	st := memory.New()
	if ledger == nil {
		ledger = st.StockChanges()
	}
	uc := NewValuationUseCase(
		st.TxRunner(),
		lock.NewLocalLocker(),
		st.InventoryItems(),
		ledger,
		st.Menus(),
		st.Recipes(),
		st.Suppliers(),
		logger.Nop(),
	)
	return &fixture{store: st, uc: uc}
}

func (f *fixture) item(t *testing.T, name string, stock string) *entity.InventoryItem {
	t.Helper()
	ctx := context.Background()
	it := &entity.InventoryItem{Name: name, Unit: "g"}
	require.NoError(t, f.store.InventoryItems().Create(ctx, it))
	if stock != "" {
		_, err := f.uc.ManualReport(ctx, ManualReportInput{
			InventoryItemID: it.ID,
			Amount:          d(stock),
			Category:        entity.StockCategoryInitiateStock,
		})
		require.NoError(t, err)
	}
	return it
}

func (f *fixture) menu(t *testing.T, name string, usage map[string]string) *entity.Menu {
	t.Helper()
	ctx := context.Background()
	m := &entity.Menu{Name: name, Size: "M"}
	require.NoError(t, f.store.Menus().Create(ctx, m))
	for itemID, amount := range usage {
		require.NoError(t, f.store.Recipes().Create(ctx, &entity.Recipe{MenuID: m.ID, InventoryItemID: itemID, AmountUsage: d(amount)}))
	}
	return m
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := f.store.InventoryItems().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.CurrentStock
}

func TestValuation_RestockLuegoDeduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	milk := f.item(t, "Leche", "100")

	_, err := f.uc.RestockByInventoryItem(ctx, milk.ID, MovementInput{Quantity: d("20")})
	require.NoError(t, err)
	assert.True(t, f.stock(t, milk.ID).Equal(d("120")))

	res, err := f.uc.DeductByInventoryItem(ctx, milk.ID, MovementInput{Quantity: d("50"), ForeignID: "venta-1"})
	require.NoError(t, err)
	assert.True(t, res.Stock[milk.ID].Equal(d("70")))
	assert.True(t, f.stock(t, milk.ID).Equal(d("70")))

	ledger, err := f.uc.ListLedger(ctx, milk.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, ledger, 3)
}

func TestValuation_RecalculateIdempotente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	beans := f.item(t, "Café en grano", "500")
	_, err := f.uc.DeductByInventoryItem(ctx, beans.ID, MovementInput{Quantity: d("18")})
	require.NoError(t, err)

	first, err := f.uc.Recalculate(ctx, beans.ID)
	require.NoError(t, err)
	second, err := f.uc.Recalculate(ctx, beans.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(d("482")))
}

func TestValuation_CheckpointIgnoraMovimientosAnteriores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return base }

	sugar := f.item(t, "Azúcar", "")
	early := base.Add(-time.Hour)
	_, err := f.uc.RestockByInventoryItem(ctx, sugar.ID, MovementInput{Quantity: d("40"), Date: &early})
	require.NoError(t, err)

	_, err = f.uc.ManualReport(ctx, ManualReportInput{InventoryItemID: sugar.ID, Amount: d("10")})
	require.NoError(t, err)

	late := base.Add(time.Hour)
	_, err = f.uc.RestockByInventoryItem(ctx, sugar.ID, MovementInput{Quantity: d("5"), Date: &late})
	require.NoError(t, err)
	assert.True(t, f.stock(t, sugar.ID).Equal(d("15")))
}

func TestValuation_DeductByMenuSinStockNoEscribe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	beans := f.item(t, "Café", "30")
	milk := f.item(t, "Leche", "1000")
	latte := f.menu(t, "Latte", map[string]string{beans.ID: "18", milk.ID: "200"})

	before := f.store.StockChanges().Count()

	check, err := f.uc.CheckStockForMenu(ctx, latte.ID, d("2"))
	require.NoError(t, err)
	assert.False(t, check.Satisfied)
	assert.True(t, check.Missing["Café"].Equal(d("6")))
	_, hasMilk := check.Missing["Leche"]
	assert.False(t, hasMilk)

	_, err = f.uc.DeductByMenu(ctx, latte.ID, MovementInput{Quantity: d("2")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.True(t, stockErr.Missing["Café"].Equal(d("6")))

	assert.Equal(t, before, f.store.StockChanges().Count())
	assert.True(t, f.stock(t, beans.ID).Equal(d("30")))
}

func TestValuation_DeductByMenuDescuentaCadaInsumo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	beans := f.item(t, "Café", "100")
	milk := f.item(t, "Leche", "1000")
	latte := f.menu(t, "Latte", map[string]string{beans.ID: "18", milk.ID: "200"})

	res, err := f.uc.DeductByMenu(ctx, latte.ID, MovementInput{Quantity: d("2"), ForeignID: "orden-7"})
	require.NoError(t, err)
	assert.Len(t, res.RecordIDs, 2)
	assert.True(t, f.stock(t, beans.ID).Equal(d("64")))
	assert.True(t, f.stock(t, milk.ID).Equal(d("600")))

	byOrder, err := f.uc.ListLedgerByForeignID(ctx, "orden-7")
	require.NoError(t, err)
	require.Len(t, byOrder, 2)
	for _, rec := range byOrder {
		assert.Equal(t, entity.StockCategoryDeduct, rec.Category)
		assert.True(t, rec.Delta().IsNegative())
	}

	_, err = f.uc.RestockByMenu(ctx, latte.ID, MovementInput{Quantity: d("1")})
	require.NoError(t, err)
	assert.True(t, f.stock(t, beans.ID).Equal(d("82")))
}

// failingLedger falla el Create número failOn (1-based) contando desde que se arma.
type failingLedger struct {
	repository.StockChangeRepository
	calls  int
	failOn int
}

func (l *failingLedger) Create(ctx context.Context, rec *entity.StockChangeRecord) error {
	l.calls++
	if l.failOn > 0 && l.calls == l.failOn {
		return errors.New("disco lleno")
	}
	return l.StockChangeRepository.Create(ctx, rec)
}

func TestValuation_LoteFallidoCompensa(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	ledger := &failingLedger{StockChangeRepository: st.StockChanges()}
	uc := NewValuationUseCase(st.TxRunner(), lock.NewLocalLocker(), st.InventoryItems(), ledger,
		st.Menus(), st.Recipes(), st.Suppliers(), logger.Nop())

	a := &entity.InventoryItem{Name: "A"}
	b := &entity.InventoryItem{Name: "B"}
	c := &entity.InventoryItem{Name: "C"}
	for _, it := range []*entity.InventoryItem{a, b, c} {
		require.NoError(t, st.InventoryItems().Create(ctx, it))
	}
	m := &entity.Menu{Name: "Combo"}
	require.NoError(t, st.Menus().Create(ctx, m))
	for _, it := range []*entity.InventoryItem{a, b, c} {
		require.NoError(t, st.Recipes().Create(ctx, &entity.Recipe{MenuID: m.ID, InventoryItemID: it.ID, AmountUsage: d("1")}))
	}

	ledger.failOn = 3
	_, err := uc.RestockByMenu(ctx, m.ID, MovementInput{Quantity: d("5")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBatchFailed)
	assert.Equal(t, 0, st.StockChanges().Count())
	for _, it := range []*entity.InventoryItem{a, b, c} {
		got, _ := st.InventoryItems().GetByID(ctx, it.ID)
		assert.True(t, got.CurrentStock.IsZero())
	}
}

func TestValuation_CheckStockForInventoryInexistente(t *testing.T) {
	f := newFixture(t, nil)
	check, err := f.uc.CheckStockForInventory(context.Background(), "no-existe", d("1"))
	require.NoError(t, err)
	assert.False(t, check.Satisfied)
	assert.Empty(t, check.Missing)
}

func TestValuation_ValidaCantidades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	it := f.item(t, "Vasos", "10")

	_, err := f.uc.DeductByInventoryItem(ctx, it.ID, MovementInput{Quantity: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ManualReport(ctx, ManualReportInput{InventoryItemID: it.ID, Amount: d("-3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RestockByInventoryItem(ctx, "no-existe", MovementInput{Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValuation_ReceiveSupplyPromediaCosto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	it := &entity.InventoryItem{Name: "Cacao", PricePerUnit: d("0.10")}
	require.NoError(t, f.store.InventoryItems().Create(ctx, it))
	_, err := f.uc.ManualReport(ctx, ManualReportInput{InventoryItemID: it.ID, Amount: d("100")})
	require.NoError(t, err)

	cost := d("0.20")
	updated, changed, err := f.uc.ReceiveSupply(ctx, it.ID, MovementInput{Quantity: d("100")}, &cost)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, updated.PricePerUnit.Equal(d("0.15")))
	assert.True(t, updated.CurrentStock.Equal(d("200")))

	ledger, err := f.uc.ListLedger(ctx, it.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StockCategorySupplied, ledger[0].Category)
}

func TestValuation_MenuAvailabilityYForecast(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	beans := f.item(t, "Café", "100")
	milk := f.item(t, "Leche", "1000")
	latte := f.menu(t, "Latte", map[string]string{beans.ID: "18", milk.ID: "200"})
	water := f.menu(t, "Agua", nil)

	n, err := f.uc.MenuAvailability(ctx, latte.ID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, int64(5), *n)

	n, err = f.uc.MenuAvailability(ctx, water.ID)
	require.NoError(t, err)
	assert.Nil(t, n)

	item, _ := f.store.InventoryItems().GetByID(ctx, milk.ID)
	item.DailyUsage = d("150")
	require.NoError(t, f.store.InventoryItems().Update(ctx, item))
	left, err := f.uc.ForecastInventory(ctx, milk.ID, 3)
	require.NoError(t, err)
	assert.True(t, left.Equal(d("550")))
}

func TestValuation_LowStockAlerts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	sup := &entity.Supplier{Name: "Tostadora", LoadTimeHours: d("48")}
	require.NoError(t, f.store.Suppliers().Create(ctx, sup))

	beans := f.item(t, "Café", "40")
	milk := f.item(t, "Leche", "40")
	for id, supplierID := range map[string]string{beans.ID: sup.ID, milk.ID: ""} {
		it, _ := f.store.InventoryItems().GetByID(ctx, id)
		it.SafetyStock = d("10")
		it.DailyUsage = d("10")
		it.SupplierID = supplierID
		require.NoError(t, f.store.InventoryItems().Update(ctx, it))
	}

	alerts, err := f.uc.LowStockAlerts(ctx, nil)
	require.NoError(t, err)
	// café: 10 + round(48/24+1)*10 = 40 -> alerta; leche: 10 + 1*10 = 20 -> sin alerta
	require.Len(t, alerts, 1)
	assert.Equal(t, "Café", alerts[0].Name)
	assert.True(t, alerts[0].Threshold.Equal(d("40")))
}

// growingRecipes agrega una línea a la receta justo después de la primera lectura,
// como lo haría una edición concurrente del catálogo.
type growingRecipes struct {
	repository.RecipeRepository
	extra *entity.Recipe
	reads int
}

func (r *growingRecipes) ListByMenu(ctx context.Context, menuID string) ([]*entity.Recipe, error) {
	list, err := r.RecipeRepository.ListByMenu(ctx, menuID)
	r.reads++
	if r.reads == 1 && r.extra != nil {
		if cerr := r.RecipeRepository.Create(ctx, r.extra); cerr != nil {
			return nil, cerr
		}
	}
	return list, err
}

// recordingLocker guarda las llaves de cada Lock.
type recordingLocker struct {
	Locker
	calls [][]string
}

func (l *recordingLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	l.calls = append(l.calls, append([]string(nil), keys...))
	return l.Locker.Lock(ctx, keys...)
}

func TestValuation_DeductByMenuBloqueaInsumoAgregadoALaReceta(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	recipes := &growingRecipes{RecipeRepository: st.Recipes()}
	locker := &recordingLocker{Locker: lock.NewLocalLocker()}
	uc := NewValuationUseCase(st.TxRunner(), locker, st.InventoryItems(), st.StockChanges(),
		st.Menus(), recipes, st.Suppliers(), logger.Nop())

	beans := &entity.InventoryItem{Name: "Café"}
	milk := &entity.InventoryItem{Name: "Leche"}
	for _, it := range []*entity.InventoryItem{beans, milk} {
		require.NoError(t, st.InventoryItems().Create(ctx, it))
		_, err := uc.ManualReport(ctx, ManualReportInput{InventoryItemID: it.ID, Amount: d("100")})
		require.NoError(t, err)
	}
	m := &entity.Menu{Name: "Latte"}
	require.NoError(t, st.Menus().Create(ctx, m))
	require.NoError(t, st.Recipes().Create(ctx, &entity.Recipe{MenuID: m.ID, InventoryItemID: beans.ID, AmountUsage: d("18")}))
	recipes.extra = &entity.Recipe{MenuID: m.ID, InventoryItemID: milk.ID, AmountUsage: d("200")}
	locker.calls = nil

	_, err := uc.DeductByMenu(ctx, m.ID, MovementInput{Quantity: d("1")})
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Contains(t, short.Missing, "Leche")

	require.Len(t, locker.calls, 2)
	assert.ElementsMatch(t, []string{LockKey(beans.ID)}, locker.calls[0])
	assert.ElementsMatch(t, []string{LockKey(beans.ID), LockKey(milk.ID)}, locker.calls[1])
	assert.Equal(t, 2, st.StockChanges().Count(), "solo los dos conteos iniciales")
}

// shiftingRecipes devuelve una receta distinta en cada lectura.
type shiftingRecipes struct {
	repository.RecipeRepository
	reads int
}

func (r *shiftingRecipes) ListByMenu(_ context.Context, menuID string) ([]*entity.Recipe, error) {
	r.reads++
	return []*entity.Recipe{{MenuID: menuID, InventoryItemID: fmt.Sprintf("insumo-%d", r.reads), AmountUsage: d("1")}}, nil
}

func TestValuation_RecetaInestableNoObtieneBloqueo(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	recipes := &shiftingRecipes{RecipeRepository: st.Recipes()}
	uc := NewValuationUseCase(st.TxRunner(), lock.NewLocalLocker(), st.InventoryItems(), st.StockChanges(),
		st.Menus(), recipes, st.Suppliers(), logger.Nop())
	for i := 1; i <= 2*menuLockAttempts; i++ {
		require.NoError(t, st.InventoryItems().Create(ctx, &entity.InventoryItem{ID: fmt.Sprintf("insumo-%d", i), Name: fmt.Sprintf("Insumo %d", i)}))
	}
	m := &entity.Menu{Name: "Especial"}
	require.NoError(t, st.Menus().Create(ctx, m))

	_, err := uc.RestockByMenu(ctx, m.ID, MovementInput{Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)
	assert.Equal(t, 0, st.StockChanges().Count())
}
