package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe línea de receta: cuánto de un insumo consume una unidad del menú.
// Identidad compuesta (MenuID, InventoryItemID).
type Recipe struct {
	MenuID          string
	InventoryItemID string
	AmountUsage     decimal.Decimal // >= 0
	Writer          string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
