package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateResponse registro de precio estimado. EstimatedPrice nil = datos insuficientes.
type EstimateResponse struct {
	ID                     string           `json:"id"`
	MenuID                 string           `json:"menu_id"`
	SalesForecast          int64            `json:"sales_forecast"`
	EstimatedIndirectCosts decimal.Decimal  `json:"estimated_indirect_costs"`
	DirectCost             decimal.Decimal  `json:"direct_cost"`
	ProfitMargin           decimal.Decimal  `json:"profit_margin"`
	ManualPrice            decimal.Decimal  `json:"manual_price"`
	EstimatedPrice         *decimal.Decimal `json:"estimated_price"`
	Category               string           `json:"category"`
	FromDate               time.Time        `json:"from_date"`
	Description            string           `json:"description,omitempty"`
}

// DirectCostRequest recálculo de costo directo de varios menús.
type DirectCostRequest struct {
	MenuIDs     []string `json:"menu_ids" validate:"required,min=1,dive,required"`
	Category    string   `json:"category,omitempty" validate:"max=50"`
	Description string   `json:"description,omitempty"`
}

// WindowRequest recálculo sobre una ventana de años (costo indirecto o pronóstico).
type WindowRequest struct {
	Year     int    `json:"year" validate:"required,min=1900,max=9999"`
	NumYears int    `json:"num_years" validate:"omitempty,min=1,max=50"`
	Category string `json:"category,omitempty" validate:"max=50"`
}

// ManualPriceRequest cambio manual del precio de venta.
type ManualPriceRequest struct {
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty" validate:"max=50"`
}

// IndirectCostResponse desglose del pozo indirecto.
type IndirectCostResponse struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Rent      decimal.Decimal `json:"rent"`
	Bills     decimal.Decimal `json:"bills"`
	Equipment decimal.Decimal `json:"equipment"`
	Labor     decimal.Decimal `json:"labor"`
	Total     decimal.Decimal `json:"total"`
}

// RecalculationResponse registros agregados por un recálculo.
type RecalculationResponse struct {
	Records []EstimateResponse `json:"records"`
}
