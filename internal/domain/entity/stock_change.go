package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de registros del ledger de stock.
const (
	StockCategoryManualCheck   = "Manual Check"   // checkpoint por conteo físico
	StockCategoryInitiateStock = "Initiate Stock" // checkpoint inicial de un insumo nuevo
	StockCategorySupplied      = "Supplied"       // recepción de proveedor
	StockCategoryDeduct        = "deduct"         // consumo por venta/uso
	StockCategoryRestock       = "restock"        // devolución o reposición manual
)

// StockChangeRecord es una entrada inmutable del ledger de un insumo.
// ChangeAmount es un delta con signo (nil en checkpoints puros); ManualReport, si no es nil,
// marca un checkpoint con el valor absoluto contado.
type StockChangeRecord struct {
	ID              string
	InventoryItemID string
	ChangeAmount    *decimal.Decimal
	ManualReport    *decimal.Decimal
	Category        string
	ForeignID       string // orden, venta o uso que originó el movimiento
	Date            time.Time
	Reporter        string
	Description     string
	CreatedAt       time.Time
}

// IsCheckpoint indica si el registro fija una línea base absoluta.
func (r *StockChangeRecord) IsCheckpoint() bool {
	return r.ManualReport != nil
}

// Delta devuelve el cambio del registro tratando nil como cero.
func (r *StockChangeRecord) Delta() decimal.Decimal {
	if r.ChangeAmount == nil {
		return decimal.Zero
	}
	return *r.ChangeAmount
}
