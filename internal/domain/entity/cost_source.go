package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rent arriendo del local; la hipoteca aporta al costo según MortgagePercentageToRent.
type Rent struct {
	ID                       string
	Name                     string
	Rent                     decimal.Decimal
	Mortgage                 decimal.Decimal
	MortgagePercentageToRent decimal.Decimal
	FromDate                 time.Time
	ToDate                   time.Time
	Description              string
}

// Total aporte del registro al pozo de costos indirectos.
func (r *Rent) Total() decimal.Decimal {
	return r.Rent.Add(r.Mortgage.Mul(r.MortgagePercentageToRent))
}

// EstimatedBills servicios y cuentas estimadas (luz, agua, internet...).
type EstimatedBills struct {
	ID          string
	Name        string
	Category    string
	Cost        decimal.Decimal
	FromDate    time.Time
	ToDate      time.Time
	Description string
}

// Equipment equipo depreciable; vigente entre PurchaseDate y ExpirationDate.
type Equipment struct {
	ID                  string
	Name                string
	Category            string
	PurchasePrice       decimal.Decimal
	MonthlyDepreciation decimal.Decimal
	PurchaseDate        time.Time
	ExpirationDate      time.Time
	Description         string
}

// TargetPositionAndSalary cargo con su salario objetivo.
// ExtraHourPayment nil = 1.4 × tarifa horaria.
type TargetPositionAndSalary struct {
	ID               string
	Name             string
	MonthlyHours     decimal.Decimal
	MonthlyPayment   decimal.Decimal
	MonthlyInsurance decimal.Decimal
	ExtraHourPayment *decimal.Decimal
}

// Shift turno de trabajo con sus asignaciones de personal.
type Shift struct {
	ID           string
	Name         string
	FromDate     time.Time
	ToDate       time.Time
	ExtraPayment decimal.Decimal
	Labor        []EstimatedLabor
	Description  string
}

// Duration horas del turno.
func (s *Shift) Duration() decimal.Decimal {
	return decimal.NewFromFloat(s.ToDate.Sub(s.FromDate).Hours())
}

// EstimatedLabor asignación de un cargo a un turno.
type EstimatedLabor struct {
	ID            string
	ShiftID       string
	PositionID    string
	NumberOfStaff int64
	ExtraHours    decimal.Decimal
}

// SalesForecast pronóstico de unidades vendidas en una ventana.
type SalesForecast struct {
	ID            string
	FromDate      time.Time
	ToDate        time.Time
	SalesForecast int64
	Description   string
}
