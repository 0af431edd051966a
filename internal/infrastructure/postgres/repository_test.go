package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/pkg/config"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(fmt.Errorf("otro")))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	require.NotNil(t, nullString("x"))
	assert.Equal(t, "x", derefString(nullString("x")))
	assert.Equal(t, "", derefString(nil))
}

func TestMigraciones_Embebidas(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	script, err := migrationFiles.ReadFile(names[0])
	require.NoError(t, err)
	for _, table := range []string{"inventory_items", "stock_changes", "menus", "recipes", "menu_price_estimates", "shifts", "sales_forecasts"} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table)
	}
}

// testPool abre una base real; se omite si TEST_DATABASE_URL no está definido.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = Migrate(ctx, pool)
	require.NoError(t, err)
	return pool
}

func TestIntegration_LedgerYCheckpoint(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	items := NewInventoryItemRepository(pool)
	ledger := NewStockChangeRepository(pool)

	name := "Café " + uuid.NewString()[:8]
	item := &entity.InventoryItem{Name: name, Unit: "g", PricePerUnit: decimal.RequireFromString("0.05")}
	require.NoError(t, items.Create(ctx, item))
	t.Cleanup(func() { _ = items.Delete(context.Background(), item.ID) })

	err := items.Create(ctx, &entity.InventoryItem{Name: "  " + name + " ", Unit: "g"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	ten, five := decimal.NewFromInt(10), decimal.NewFromInt(5)
	require.NoError(t, ledger.Create(ctx, &entity.StockChangeRecord{InventoryItemID: item.ID, ManualReport: &ten, Category: "Manual Check", Date: base}))
	require.NoError(t, ledger.Create(ctx, &entity.StockChangeRecord{InventoryItemID: item.ID, ChangeAmount: &five, Category: "Restock", Date: base.Add(time.Hour)}))

	cp, err := ledger.LatestCheckpoint(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.True(t, cp.ManualReport.Equal(ten))

	list, err := ledger.ListByItem(ctx, item.ID, &base, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Restock", list[0].Category)

	missing, err := items.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
