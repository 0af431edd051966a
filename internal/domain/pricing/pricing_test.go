package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSuggestedPrice_Formula(t *testing.T) {
	got := SuggestedPrice(dec("1.5"), dec("2000"), 1000, dec("0.3"))
	require.NotNil(t, got)
	assert.InDelta(t, 4.55, got.InexactFloat64(), 0.01)
}

func TestSuggestedPrice_SinPronosticoNoAplica(t *testing.T) {
	assert.Nil(t, SuggestedPrice(dec("1.5"), dec("2000"), 0, dec("0.3")))
	assert.Nil(t, SuggestedPrice(dec("99"), decimal.Zero, 0, decimal.Zero))
}

func TestSuggestedPrice_MargenNegativoNoAplica(t *testing.T) {
	assert.Nil(t, SuggestedPrice(dec("1.5"), dec("2000"), 1000, dec("-0.1")))
}

func TestDirectCost(t *testing.T) {
	got := DirectCost([]CostLine{
		{AmountUsage: dec("18"), PricePerUnit: dec("0.05")},
		{AmountUsage: dec("200"), PricePerUnit: dec("0.002")},
		{AmountUsage: dec("1"), PricePerUnit: decimal.Zero},
	})
	assert.True(t, dec("1.3").Equal(got), got.String())
}

func TestLaborCost_TurnoConExtras(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	shift := &entity.Shift{
		ID: "s1", FromDate: start, ToDate: start.Add(8 * time.Hour), ExtraPayment: dec("10"),
		Labor: []entity.EstimatedLabor{{PositionID: "barista", NumberOfStaff: 2, ExtraHours: dec("2")}},
	}
	positions := map[string]*entity.TargetPositionAndSalary{
		"barista": {ID: "barista", MonthlyHours: dec("160"), MonthlyPayment: dec("1600"), MonthlyInsurance: dec("300")},
	}
	// tarifa 10/h; 6h normales × 10 × 2 = 120; 2h extra × 14 × 2 = 56; seguro 10 × 2 = 20; pago extra 10
	assert.True(t, dec("206").Equal(LaborCost([]*entity.Shift{shift}, positions)))
}

func TestLaborCost_CargoConTarifaExtraPropia(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	extra := dec("20")
	shift := &entity.Shift{
		FromDate: start, ToDate: start.Add(4 * time.Hour),
		Labor: []entity.EstimatedLabor{{PositionID: "p", NumberOfStaff: 1, ExtraHours: dec("1")}},
	}
	positions := map[string]*entity.TargetPositionAndSalary{
		"p": {MonthlyHours: dec("100"), MonthlyPayment: dec("1000"), ExtraHourPayment: &extra},
	}
	// 3h × 10 + 1h × 20
	assert.True(t, dec("50").Equal(LaborCost([]*entity.Shift{shift}, positions)))
}

func TestHourlyRate_SinHorasEsCero(t *testing.T) {
	assert.True(t, HourlyRate(&entity.TargetPositionAndSalary{MonthlyPayment: dec("1000")}).IsZero())
	assert.True(t, HourlyRate(nil).IsZero())
}

func TestYearWindow(t *testing.T) {
	from, to := YearWindow(2024, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
