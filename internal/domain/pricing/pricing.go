// Package pricing contiene las fórmulas puras del motor de costeo de menú:
// costo directo, costo de mano de obra y precio sugerido.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

var (
	defaultOvertimeFactor = decimal.RequireFromString("1.4")
	daysPerMonth          = decimal.NewFromInt(30)
)

// SuggestedPrice (indirecto/pronóstico + directo) × (1 + margen).
// Devuelve nil si no hay pronóstico de ventas o el margen es negativo.
func SuggestedPrice(directCost, indirectCost decimal.Decimal, salesForecast int64, profitMargin decimal.Decimal) *decimal.Decimal {
	if salesForecast == 0 || profitMargin.IsNegative() {
		return nil
	}
	perUnitIndirect := indirectCost.Div(decimal.NewFromInt(salesForecast))
	price := perUnitIndirect.Add(directCost).Mul(decimal.NewFromInt(1).Add(profitMargin))
	return &price
}

// CostLine consumo de un insumo por unidad de menú y su costo unitario.
type CostLine struct {
	AmountUsage  decimal.Decimal
	PricePerUnit decimal.Decimal
}

// DirectCost Σ consumo × costo unitario.
func DirectCost(lines []CostLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.AmountUsage.Mul(l.PricePerUnit))
	}
	return total
}

// HourlyRate salario mensual / horas mensuales (0 si no está definido).
func HourlyRate(p *entity.TargetPositionAndSalary) decimal.Decimal {
	if p == nil || !p.MonthlyHours.IsPositive() {
		return decimal.Zero
	}
	return p.MonthlyPayment.Div(p.MonthlyHours)
}

// OvertimeRate tarifa de hora extra del cargo; por defecto 1.4 × tarifa horaria.
func OvertimeRate(p *entity.TargetPositionAndSalary) decimal.Decimal {
	if p != nil && p.ExtraHourPayment != nil {
		return *p.ExtraHourPayment
	}
	return HourlyRate(p).Mul(defaultOvertimeFactor)
}

// AssignmentCost costo de una asignación de personal en un turno:
// horas normales × tarifa × personas + extras × tarifa extra × personas + seguro diario × personas + pago extra del turno.
func AssignmentCost(shift *entity.Shift, labor entity.EstimatedLabor, position *entity.TargetPositionAndSalary) decimal.Decimal {
	headcount := decimal.NewFromInt(labor.NumberOfStaff)
	regularHours := shift.Duration().Sub(labor.ExtraHours)

	cost := regularHours.Mul(HourlyRate(position)).Mul(headcount)
	cost = cost.Add(labor.ExtraHours.Mul(OvertimeRate(position)).Mul(headcount))
	if position != nil {
		cost = cost.Add(position.MonthlyInsurance.Div(daysPerMonth).Mul(headcount))
	}
	return cost.Add(shift.ExtraPayment)
}

// LaborCost suma el costo de todas las asignaciones de los turnos.
// positions indexa los cargos por ID; un cargo ausente aporta tarifa 0.
func LaborCost(shifts []*entity.Shift, positions map[string]*entity.TargetPositionAndSalary) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shifts {
		for _, l := range s.Labor {
			total = total.Add(AssignmentCost(s, l, positions[l.PositionID]))
		}
	}
	return total
}

// YearWindow ventana semiabierta [1 ene de year, 1 ene de year+numYears) en UTC,
// equivalente a [1 ene, 31 dic de year+numYears-1].
func YearWindow(year, numYears int) (from, to time.Time) {
	if numYears < 1 {
		numYears = 1
	}
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(year+numYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, to
}
