package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	inv "github.com/jhoicas/Cafeteria-api/internal/domain/inventory"
)

// LowStockAlert insumo en o bajo su umbral de reposición.
type LowStockAlert struct {
	InventoryItemID string
	Name            string
	Unit            string
	CurrentStock    decimal.Decimal
	Threshold       decimal.Decimal
	Deficit         decimal.Decimal // umbral - stock (>= 0)
	SupplierID      string
	LoadTimeHours   decimal.Decimal
}

// LowStockAlerts evalúa los insumos indicados (todos si ids está vacío).
// Umbral = SafetyStock + round(horas de entrega/24 + 1) * DailyUsage; sin proveedor las horas son 0.
// El resultado se ordena por mayor déficit.
func (uc *ValuationUseCase) LowStockAlerts(ctx context.Context, ids []string) ([]LowStockAlert, error) {
	items, err := uc.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	loadTimes := make(map[string]decimal.Decimal)
	alerts := make([]LowStockAlert, 0)
	for _, item := range items {
		loadHours := decimal.Zero
		if item.SupplierID != "" {
			lt, ok := loadTimes[item.SupplierID]
			if !ok {
				sup, err := uc.supplierRepo.GetByID(ctx, item.SupplierID)
				if err != nil {
					return nil, err
				}
				if sup != nil {
					lt = sup.LoadTimeHours
				}
				loadTimes[item.SupplierID] = lt
			}
			loadHours = lt
		}

		threshold := inv.LowStockThreshold(item.SafetyStock, item.DailyUsage, loadHours)
		if item.CurrentStock.GreaterThan(threshold) {
			continue
		}
		alerts = append(alerts, LowStockAlert{
			InventoryItemID: item.ID,
			Name:            item.Name,
			Unit:            item.Unit,
			CurrentStock:    item.CurrentStock,
			Threshold:       threshold,
			Deficit:         threshold.Sub(item.CurrentStock),
			SupplierID:      item.SupplierID,
			LoadTimeHours:   loadHours,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		return a.Name < b.Name
	})
	return alerts, nil
}

func (uc *ValuationUseCase) itemsFor(ctx context.Context, ids []string) ([]*entity.InventoryItem, error) {
	if len(ids) == 0 {
		return uc.itemRepo.List(ctx)
	}
	items := make([]*entity.InventoryItem, 0, len(ids))
	for _, id := range ids {
		item, err := uc.requireItem(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
