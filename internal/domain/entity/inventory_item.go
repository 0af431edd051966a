package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo del café (leche, café en grano, vasos...).
// CurrentStock es un caché derivado del ledger de StockChangeRecord; nunca es la fuente de verdad.
type InventoryItem struct {
	ID           string
	Name         string // único (comparación normalizada)
	Unit         string // g, ml, unidad...
	Category     string
	CurrentStock decimal.Decimal // caché: replay del ledger desde el último checkpoint
	CurrentPrice decimal.Decimal // precio de compra vigente
	PricePerUnit decimal.Decimal // costo por unidad usado en el costo directo de recetas
	SafetyStock  decimal.Decimal
	DailyUsage   decimal.Decimal
	SupplierID   string // vacío si no tiene proveedor actual
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
