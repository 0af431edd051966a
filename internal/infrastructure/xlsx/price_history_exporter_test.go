package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

func TestExportPriceHistory(t *testing.T) {
	price := decimal.RequireFromString("4.55")
	records := []*entity.EstimatedMenuPriceRecord{
		{Category: entity.PriceCategoryRecipeChange, DirectCost: decimal.RequireFromString("1.5"), SalesForecast: 1000, EstimatedPrice: &price, FromDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{Category: entity.PriceCategoryNewMenuItem, FromDate: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
	}

	out, err := NewPriceHistoryExporter().ExportPriceHistory(context.Background(), "Latte M", records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Historial de precios: Latte M", title)

	category, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	assert.Equal(t, entity.PriceCategoryRecipeChange, category)

	suggested, err := f.GetCellValue(sheetName, "H4")
	require.NoError(t, err)
	assert.Equal(t, "4.55", suggested)

	missing, err := f.GetCellValue(sheetName, "H5")
	require.NoError(t, err)
	assert.Equal(t, "Sin datos suficientes", missing)
}
