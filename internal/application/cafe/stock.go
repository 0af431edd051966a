package cafe

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// AddInventoryItem crea el insumo y, si llega stock inicial, su checkpoint "Initiate Stock".
func (s *Service) AddInventoryItem(ctx context.Context, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	item, err := s.items.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if in.InitialStock != nil {
		if _, err := s.valuation.ManualReport(ctx, inventory.ManualReportInput{
			InventoryItemID: item.ID,
			Amount:          *in.InitialStock,
			Reporter:        in.Reporter,
			Category:        entity.StockCategoryInitiateStock,
		}); err != nil {
			return nil, err
		}
		return s.items.GetByID(ctx, item.ID)
	}
	return item, nil
}

// UpdateInventoryItem edita el insumo; un cambio de costo por unidad recalcula los menús que lo usan.
func (s *Service) UpdateInventoryItem(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*entity.InventoryItem, Recalc, error) {
	item, priceChanged, err := s.items.Update(ctx, id, in)
	if err != nil {
		return nil, Recalc{}, err
	}
	if !priceChanged {
		return item, Recalc{}, nil
	}
	rc, err := s.OnInventoryPriceChanged(ctx, id)
	return item, rc, err
}

// GetInventoryItem obtiene un insumo.
func (s *Service) GetInventoryItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.items.GetByID(ctx, id)
}

// ListInventoryItems lista los insumos.
func (s *Service) ListInventoryItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return s.items.List(ctx)
}

// DeleteInventoryItem borra un insumo sin recetas.
func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

// AddSupplier crea un proveedor.
func (s *Service) AddSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	return s.suppliers.Create(ctx, in)
}

// ListSuppliers lista los proveedores.
func (s *Service) ListSuppliers(ctx context.Context) ([]*entity.Supplier, error) {
	return s.suppliers.List(ctx)
}

// Recalculate recalcula el stock de un insumo desde su ledger.
func (s *Service) Recalculate(ctx context.Context, inventoryItemID string) (decimal.Decimal, error) {
	return s.valuation.Recalculate(ctx, inventoryItemID)
}

// CheckStockForMenu verifica si hay insumos para quantity unidades del menú.
func (s *Service) CheckStockForMenu(ctx context.Context, menuID string, quantity decimal.Decimal) (inventory.StockCheck, error) {
	return s.valuation.CheckStockForMenu(ctx, menuID, quantity)
}

// CheckStockForInventory verifica un insumo suelto.
func (s *Service) CheckStockForInventory(ctx context.Context, inventoryItemID string, quantity decimal.Decimal) (inventory.StockCheck, error) {
	return s.valuation.CheckStockForInventory(ctx, inventoryItemID, quantity)
}

// DeductStockByMenu descuenta los insumos de una venta.
func (s *Service) DeductStockByMenu(ctx context.Context, menuID string, in inventory.MovementInput) (*inventory.MovementResult, error) {
	return s.valuation.DeductByMenu(ctx, menuID, in)
}

// DeductStockByInventoryItem descuenta un insumo (uso interno, merma).
func (s *Service) DeductStockByInventoryItem(ctx context.Context, inventoryItemID string, in inventory.MovementInput) (*inventory.MovementResult, error) {
	return s.valuation.DeductByInventoryItem(ctx, inventoryItemID, in)
}

// RestockByMenu devuelve al inventario los insumos de un menú (p. ej. venta anulada).
func (s *Service) RestockByMenu(ctx context.Context, menuID string, in inventory.MovementInput) (*inventory.MovementResult, error) {
	return s.valuation.RestockByMenu(ctx, menuID, in)
}

// RestockByInventoryItem repone un insumo.
func (s *Service) RestockByInventoryItem(ctx context.Context, inventoryItemID string, in inventory.MovementInput) (*inventory.MovementResult, error) {
	return s.valuation.RestockByInventoryItem(ctx, inventoryItemID, in)
}

// ReceiveSupply recepción de proveedor; si cambia el costo por unidad recalcula los menús afectados.
func (s *Service) ReceiveSupply(ctx context.Context, inventoryItemID string, in inventory.MovementInput, unitCost *decimal.Decimal) (*entity.InventoryItem, Recalc, error) {
	item, priceChanged, err := s.valuation.ReceiveSupply(ctx, inventoryItemID, in, unitCost)
	if err != nil {
		return nil, Recalc{}, err
	}
	if !priceChanged {
		return item, Recalc{}, nil
	}
	rc, err := s.OnInventoryPriceChanged(ctx, inventoryItemID)
	return item, rc, err
}

// ManualReport registra un conteo físico.
func (s *Service) ManualReport(ctx context.Context, in inventory.ManualReportInput) (decimal.Decimal, error) {
	return s.valuation.ManualReport(ctx, in)
}

// LowStockAlerts insumos en o bajo su umbral de reposición.
func (s *Service) LowStockAlerts(ctx context.Context, ids []string) ([]inventory.LowStockAlert, error) {
	return s.valuation.LowStockAlerts(ctx, ids)
}

// ForecastInventory proyección lineal del stock.
func (s *Service) ForecastInventory(ctx context.Context, inventoryItemID string, days int) (decimal.Decimal, error) {
	return s.valuation.ForecastInventory(ctx, inventoryItemID, days)
}

// ListLedger historial de stock del insumo.
func (s *Service) ListLedger(ctx context.Context, inventoryItemID string, from, to *time.Time) ([]*entity.StockChangeRecord, error) {
	return s.valuation.ListLedger(ctx, inventoryItemID, from, to)
}

// ListLedgerByForeignID movimientos de una misma orden o venta.
func (s *Service) ListLedgerByForeignID(ctx context.Context, foreignID string) ([]*entity.StockChangeRecord, error) {
	return s.valuation.ListLedgerByForeignID(ctx, foreignID)
}
