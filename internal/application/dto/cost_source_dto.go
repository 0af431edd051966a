package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRentRequest alta de arriendo.
type CreateRentRequest struct {
	Name                     string          `json:"name" validate:"required,max=200"`
	Rent                     decimal.Decimal `json:"rent"`
	Mortgage                 decimal.Decimal `json:"mortgage"`
	MortgagePercentageToRent decimal.Decimal `json:"mortgage_percentage_to_rent"`
	FromDate                 time.Time       `json:"from_date" validate:"required"`
	ToDate                   time.Time       `json:"to_date" validate:"required"`
	Description              string          `json:"description,omitempty"`
}

// CreateBillsRequest alta de servicios estimados.
type CreateBillsRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Category    string          `json:"category" validate:"max=100"`
	Cost        decimal.Decimal `json:"cost"`
	FromDate    time.Time       `json:"from_date" validate:"required"`
	ToDate      time.Time       `json:"to_date" validate:"required"`
	Description string          `json:"description,omitempty"`
}

// CreateEquipmentRequest alta de equipo depreciable.
type CreateEquipmentRequest struct {
	Name                string          `json:"name" validate:"required,max=200"`
	Category            string          `json:"category" validate:"max=100"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	MonthlyDepreciation decimal.Decimal `json:"monthly_depreciation"`
	PurchaseDate        time.Time       `json:"purchase_date" validate:"required"`
	ExpirationDate      time.Time       `json:"expiration_date" validate:"required"`
	Description         string          `json:"description,omitempty"`
}

// CreatePositionRequest alta de cargo con salario objetivo.
type CreatePositionRequest struct {
	Name             string           `json:"name" validate:"required,max=200"`
	MonthlyHours     decimal.Decimal  `json:"monthly_hours"`
	MonthlyPayment   decimal.Decimal  `json:"monthly_payment"`
	MonthlyInsurance decimal.Decimal  `json:"monthly_insurance"`
	ExtraHourPayment *decimal.Decimal `json:"extra_hour_payment,omitempty"`
}

// LaborRequest asignación de personal a un turno.
type LaborRequest struct {
	PositionID    string          `json:"position_id" validate:"required"`
	NumberOfStaff int64           `json:"number_of_staff" validate:"min=0"`
	ExtraHours    decimal.Decimal `json:"extra_hours"`
}

// CreateShiftRequest alta de turno con sus asignaciones.
type CreateShiftRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	FromDate     time.Time       `json:"from_date" validate:"required"`
	ToDate       time.Time       `json:"to_date" validate:"required"`
	ExtraPayment decimal.Decimal `json:"extra_payment"`
	Labor        []LaborRequest  `json:"labor" validate:"dive"`
	Description  string          `json:"description,omitempty"`
}

// CreateSalesForecastRequest alta de pronóstico de ventas.
type CreateSalesForecastRequest struct {
	FromDate      time.Time `json:"from_date" validate:"required"`
	ToDate        time.Time `json:"to_date" validate:"required"`
	SalesForecast int64     `json:"sales_forecast" validate:"min=0"`
	Description   string    `json:"description,omitempty"`
}

// CostSourceCreatedResponse id creado y resultado del recálculo disparado.
// Repriced = menús con nuevo registro de precio; Note explica por qué no hubo recálculo.
type CostSourceCreatedResponse struct {
	ID       string `json:"id"`
	Repriced int    `json:"repriced"`
	Note     string `json:"note,omitempty"`
}
