package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías (motivo) de los registros de precio estimado.
const (
	PriceCategoryRecipeChange      = "Recipe Change"
	PriceCategoryInventoryChanged  = "Inventory Changed"
	PriceCategoryLaborChanged      = "Labor Changed"
	PriceCategoryPositionChanged   = "Position Changed"
	PriceCategoryRentChanged       = "Rent Changed"
	PriceCategoryBillsChanged      = "Bills Changed"
	PriceCategoryEquipmentChanged  = "Equipment Changed"
	PriceCategoryForecastChanged   = "Forecast Changed"
	PriceCategoryManualPriceChange = "Manual Price Change"
	PriceCategoryNewMenuItem       = "New Menu Item"
	PriceCategoryIndirectCost      = "Indirect Cost"
)

// EstimatedMenuPriceRecord versión inmutable de la estimación de precio de un menú.
// EstimatedIndirectCosts es el pozo total (aún sin dividir por el pronóstico de ventas).
type EstimatedMenuPriceRecord struct {
	ID                     string
	MenuID                 string
	SalesForecast          int64
	EstimatedIndirectCosts decimal.Decimal
	DirectCost             decimal.Decimal
	ProfitMargin           decimal.Decimal
	ManualPrice            decimal.Decimal
	EstimatedPrice         *decimal.Decimal // nil = datos insuficientes
	Category               string
	FromDate               time.Time
	Description            string
	CreatedAt              time.Time
}
