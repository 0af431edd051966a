package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory/items.
// InitialStock, si llega, crea el checkpoint "Initiate Stock".
type CreateInventoryItemRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Unit         string           `json:"unit" validate:"required,max=20"`
	Category     string           `json:"category" validate:"max=100"`
	CurrentPrice decimal.Decimal  `json:"current_price"`
	PricePerUnit decimal.Decimal  `json:"price_per_unit"`
	SafetyStock  decimal.Decimal  `json:"safety_stock"`
	DailyUsage   decimal.Decimal  `json:"daily_usage"`
	SupplierID   string           `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	InitialStock *decimal.Decimal `json:"initial_stock,omitempty"`
	Reporter     string           `json:"reporter,omitempty"`
}

// UpdateInventoryItemRequest edición parcial; el stock no se edita (solo vía ledger).
type UpdateInventoryItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	Category     *string          `json:"category"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	SafetyStock  *decimal.Decimal `json:"safety_stock"`
	DailyUsage   *decimal.Decimal `json:"daily_usage"`
	SupplierID   *string          `json:"supplier_id"`
}

// InventoryItemResponse salida de un insumo.
type InventoryItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	DailyUsage   decimal.Decimal `json:"daily_usage"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockMovementRequest body para descontar o reponer stock (por menú o por insumo).
type StockMovementRequest struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Category    string          `json:"category,omitempty" validate:"max=50"`
	ForeignID   string          `json:"foreign_id,omitempty" validate:"max=100"`
	Date        *time.Time      `json:"date,omitempty"`
	Reporter    string          `json:"reporter,omitempty" validate:"max=100"`
	Description string          `json:"description,omitempty"`
}

// ReceiveSupplyRequest recepción de proveedor; UnitCost actualiza el costo promedio.
type ReceiveSupplyRequest struct {
	StockMovementRequest
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// ManualReportRequest conteo físico.
type ManualReportRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Reporter    string          `json:"reporter" validate:"required,max=100"`
	Date        *time.Time      `json:"date,omitempty"`
	Category    string          `json:"category,omitempty" validate:"max=50"`
	ForeignID   string          `json:"foreign_id,omitempty"`
	Description string          `json:"description,omitempty"`
}

// StockCheckResponse resultado de verificación de stock.
type StockCheckResponse struct {
	Satisfied bool                       `json:"satisfied"`
	Missing   map[string]decimal.Decimal `json:"missing"`
}

// MovementResponse registros creados y stock resultante por insumo.
type MovementResponse struct {
	RecordIDs []string                   `json:"record_ids"`
	Stock     map[string]decimal.Decimal `json:"stock"`
}

// StockLevelResponse stock recalculado de un insumo.
type StockLevelResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
}

// StockChangeResponse entrada del ledger.
type StockChangeResponse struct {
	ID              string           `json:"id"`
	InventoryItemID string           `json:"inventory_item_id"`
	ChangeAmount    *decimal.Decimal `json:"change_amount"`
	ManualReport    *decimal.Decimal `json:"manual_report"`
	Category        string           `json:"category"`
	ForeignID       string           `json:"foreign_id,omitempty"`
	Date            time.Time        `json:"date"`
	Reporter        string           `json:"reporter,omitempty"`
	Description     string           `json:"description,omitempty"`
}

// LowStockAlertResponse insumo en o bajo su umbral.
type LowStockAlertResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	Threshold       decimal.Decimal `json:"threshold"`
	Deficit         decimal.Decimal `json:"deficit"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	LoadTimeHours   decimal.Decimal `json:"load_time_hours"`
}

// ForecastResponse proyección lineal de stock.
type ForecastResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Days            int             `json:"days"`
	ForecastStock   decimal.Decimal `json:"forecast_stock"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Contact       string          `json:"contact" validate:"max=200"`
	LoadTimeHours decimal.Decimal `json:"load_time_hours"`
}

// SupplierResponse salida de proveedor.
type SupplierResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Contact       string          `json:"contact"`
	LoadTimeHours decimal.Decimal `json:"load_time_hours"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InventoryItemUpdatedResponse insumo editado y menús recosteados por el cambio de costo.
type InventoryItemUpdatedResponse struct {
	Item InventoryItemResponse `json:"item"`
	RecalcResponse
}
