package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// ReplayStock recalcula el stock desde el ledger (servicio de dominio, función pura).
// Stock = ManualReport del checkpoint (0 si no hay) + Σ ChangeAmount de los registros posteriores,
// excluyendo el propio checkpoint. ChangeAmount nil cuenta como 0.
func ReplayStock(checkpoint *entity.StockChangeRecord, since []*entity.StockChangeRecord) decimal.Decimal {
	base := decimal.Zero
	checkpointID := ""
	if checkpoint != nil {
		checkpointID = checkpoint.ID
		if checkpoint.ManualReport != nil {
			base = *checkpoint.ManualReport
		}
	}
	sum := decimal.Zero
	for _, rec := range since {
		if rec.ID == checkpointID {
			continue
		}
		sum = sum.Add(rec.Delta())
	}
	return base.Add(sum)
}

// CostCalculator implementa la lógica de costo promedio ponderado para recepciones de proveedor.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.IsNegative() {
		stockActual = decimal.Zero
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// LowStockThreshold umbral de alerta: SafetyStock + round(horasEntrega/24 + 1) * DailyUsage.
// El redondeo es bancario (medio a par).
func LowStockThreshold(safetyStock, dailyUsage, loadTimeHours decimal.Decimal) decimal.Decimal {
	days := loadTimeHours.Div(decimal.NewFromInt(24)).Add(decimal.NewFromInt(1)).RoundBank(0)
	return safetyStock.Add(days.Mul(dailyUsage))
}

// ForecastStock proyección lineal ingenua del stock restante tras n días.
func ForecastStock(currentStock, dailyUsage decimal.Decimal, days int) decimal.Decimal {
	return currentStock.Sub(dailyUsage.Mul(decimal.NewFromInt(int64(days))))
}

// Shortfall cantidad faltante para cubrir required con available (cero si alcanza).
func Shortfall(available, required decimal.Decimal) decimal.Decimal {
	if available.GreaterThanOrEqual(required) {
		return decimal.Zero
	}
	return required.Sub(available)
}

// MaxProducible unidades enteras producibles con el stock disponible para un consumo por unidad.
// ok=false si el consumo es cero (el insumo no limita).
func MaxProducible(stock, usagePerUnit decimal.Decimal) (n int64, ok bool) {
	if !usagePerUnit.IsPositive() {
		return 0, false
	}
	if !stock.IsPositive() {
		return 0, true
	}
	return stock.Div(usagePerUnit).Floor().IntPart(), true
}
