package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	inv "github.com/jhoicas/Cafeteria-api/internal/domain/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

// ValuationUseCase mantiene el stock de cada insumo como replay de su ledger.
// Toda operación que toca stock toma el bloqueo por insumo antes de verificar
// y lo suelta después del último recálculo.
type ValuationUseCase struct {
	txRunner     TxRunner
	locker       Locker
	itemRepo     repository.InventoryItemRepository
	ledgerRepo   repository.StockChangeRepository
	menuRepo     repository.MenuRepository
	recipeRepo   repository.RecipeRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewValuationUseCase construye el motor de valoración de inventario.
func NewValuationUseCase(
	txRunner TxRunner,
	locker Locker,
	itemRepo repository.InventoryItemRepository,
	ledgerRepo repository.StockChangeRepository,
	menuRepo repository.MenuRepository,
	recipeRepo repository.RecipeRepository,
	supplierRepo repository.SupplierRepository,
	log *logger.Logger,
) *ValuationUseCase {
	return &ValuationUseCase{
		txRunner:     txRunner,
		locker:       locker,
		itemRepo:     itemRepo,
		ledgerRepo:   ledgerRepo,
		menuRepo:     menuRepo,
		recipeRepo:   recipeRepo,
		supplierRepo: supplierRepo,
		log:          log.Named("inventory"),
		now:          time.Now,
	}
}

// MovementInput datos comunes de un movimiento de stock (venta, uso, reposición).
// Quantity es siempre positiva; el signo lo decide la operación.
type MovementInput struct {
	Quantity    decimal.Decimal
	Category    string
	ForeignID   string
	Date        *time.Time
	Reporter    string
	Description string
}

// ManualReportInput conteo físico que fija un checkpoint absoluto.
type ManualReportInput struct {
	InventoryItemID string
	Amount          decimal.Decimal
	Reporter        string
	Date            *time.Time
	Category        string // "Manual Check" por defecto
	ForeignID       string
	Description     string
}

// StockCheck resultado de una verificación de suficiencia.
// Missing: nombre del insumo → cantidad faltante.
type StockCheck struct {
	Satisfied bool
	Missing   map[string]decimal.Decimal
}

// MovementResult registros agregados y stock resultante por insumo.
type MovementResult struct {
	RecordIDs []string
	Stock     map[string]decimal.Decimal
}

// line consumo resuelto de un insumo dentro de un movimiento.
type line struct {
	item   *entity.InventoryItem
	amount decimal.Decimal
}

// Recalculate recalcula el stock cacheado del insumo a partir de su ledger.
func (uc *ValuationUseCase) Recalculate(ctx context.Context, inventoryItemID string) (decimal.Decimal, error) {
	release, err := uc.locker.Lock(ctx, LockKey(inventoryItemID))
	if err != nil {
		return decimal.Zero, err
	}
	defer release()
	return uc.recalculate(ctx, inventoryItemID)
}

// recalculate: replay completo dentro de una transacción con la fila del insumo bloqueada.
// Quien llama debe tener el bloqueo del insumo.
func (uc *ValuationUseCase) recalculate(ctx context.Context, inventoryItemID string) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		ledgerRepo repository.StockChangeRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, inventoryItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		checkpoint, err := ledgerRepo.LatestCheckpoint(ctx, inventoryItemID)
		if err != nil {
			return err
		}
		var since *time.Time
		if checkpoint != nil {
			since = &checkpoint.Date
		}
		records, err := ledgerRepo.ListByItem(ctx, inventoryItemID, since, nil)
		if err != nil {
			return err
		}
		stock = inv.ReplayStock(checkpoint, records)
		return itemRepo.UpdateCurrentStock(ctx, inventoryItemID, stock)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("recalcular stock %s: %w", inventoryItemID, err)
	}
	uc.log.Debug().Str("inventory_item_id", inventoryItemID).Str("stock", stock.String()).Msg("stock recalculado")
	return stock, nil
}

// CheckStockForMenu compara el consumo de quantity unidades del menú contra el stock cacheado.
// No modifica estado.
func (uc *ValuationUseCase) CheckStockForMenu(ctx context.Context, menuID string, quantity decimal.Decimal) (StockCheck, error) {
	if !quantity.IsPositive() {
		return StockCheck{}, domain.ErrInvalidInput
	}
	lines, err := uc.menuLines(ctx, menuID, quantity)
	if err != nil {
		return StockCheck{}, err
	}
	return checkLines(lines), nil
}

// CheckStockForInventory verificación de un insumo suelto. Si el insumo no existe
// el resultado es insatisfecho con el mapa de faltantes vacío (sin error).
func (uc *ValuationUseCase) CheckStockForInventory(ctx context.Context, inventoryItemID string, quantity decimal.Decimal) (StockCheck, error) {
	if !quantity.IsPositive() {
		return StockCheck{}, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, inventoryItemID)
	if err != nil {
		return StockCheck{}, err
	}
	if item == nil {
		uc.log.Warn().Str("inventory_item_id", inventoryItemID).Msg("verificación de stock sobre insumo inexistente")
		return StockCheck{Satisfied: false, Missing: map[string]decimal.Decimal{}}, nil
	}
	return checkLines([]line{{item: item, amount: quantity}}), nil
}

func checkLines(lines []line) StockCheck {
	res := StockCheck{Satisfied: true, Missing: map[string]decimal.Decimal{}}
	for _, l := range lines {
		short := inv.Shortfall(l.item.CurrentStock, l.amount)
		if short.IsPositive() {
			res.Satisfied = false
			res.Missing[l.item.Name] = short
		}
	}
	return res
}

// DeductByMenu descuenta los insumos de quantity unidades del menú.
// Si falta stock no escribe nada y devuelve *domain.InsufficientStockError.
func (uc *ValuationUseCase) DeductByMenu(ctx context.Context, menuID string, in MovementInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	return uc.withMenuLocks(ctx, menuID, in.Quantity, func(lines []line) (*MovementResult, error) {
		return uc.deduct(ctx, lines, in)
	})
}

// DeductByInventoryItem descuenta quantity de un insumo.
func (uc *ValuationUseCase) DeductByInventoryItem(ctx context.Context, inventoryItemID string, in MovementInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	return uc.withLocks(ctx, []string{LockKey(inventoryItemID)}, func() (*MovementResult, error) {
		item, err := uc.requireItem(ctx, inventoryItemID)
		if err != nil {
			return nil, err
		}
		return uc.deduct(ctx, []line{{item: item, amount: in.Quantity}}, in)
	})
}

func (uc *ValuationUseCase) deduct(ctx context.Context, lines []line, in MovementInput) (*MovementResult, error) {
	if check := checkLines(lines); !check.Satisfied {
		uc.log.Warn().Interface("missing", check.Missing).Str("foreign_id", in.ForeignID).Msg("stock insuficiente, no se descuenta")
		return nil, &domain.InsufficientStockError{Missing: check.Missing}
	}
	if in.Category == "" {
		in.Category = entity.StockCategoryDeduct
	}
	return uc.apply(ctx, lines, in, true)
}

// RestockByMenu devuelve al inventario los insumos de quantity unidades del menú.
// No tiene precondición de stock.
func (uc *ValuationUseCase) RestockByMenu(ctx context.Context, menuID string, in MovementInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	return uc.withMenuLocks(ctx, menuID, in.Quantity, func(lines []line) (*MovementResult, error) {
		if in.Category == "" {
			in.Category = entity.StockCategoryRestock
		}
		return uc.apply(ctx, lines, in, false)
	})
}

// RestockByInventoryItem suma quantity al insumo.
func (uc *ValuationUseCase) RestockByInventoryItem(ctx context.Context, inventoryItemID string, in MovementInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	return uc.withLocks(ctx, []string{LockKey(inventoryItemID)}, func() (*MovementResult, error) {
		item, err := uc.requireItem(ctx, inventoryItemID)
		if err != nil {
			return nil, err
		}
		if in.Category == "" {
			in.Category = entity.StockCategoryRestock
		}
		return uc.apply(ctx, []line{{item: item, amount: in.Quantity}}, in, false)
	})
}

// ReceiveSupply registra una recepción de proveedor. Si llega unitCost, el costo por unidad del
// insumo pasa al promedio ponderado con el stock previo. Devuelve el insumo actualizado
// y si cambió su costo por unidad.
func (uc *ValuationUseCase) ReceiveSupply(ctx context.Context, inventoryItemID string, in MovementInput, unitCost *decimal.Decimal) (*entity.InventoryItem, bool, error) {
	if !in.Quantity.IsPositive() || (unitCost != nil && unitCost.IsNegative()) {
		return nil, false, domain.ErrInvalidInput
	}
	if in.Category == "" {
		in.Category = entity.StockCategorySupplied
	}
	var (
		updated      *entity.InventoryItem
		priceChanged bool
	)
	_, err := uc.withLocks(ctx, []string{LockKey(inventoryItemID)}, func() (*MovementResult, error) {
		item, err := uc.requireItem(ctx, inventoryItemID)
		if err != nil {
			return nil, err
		}
		res, err := uc.apply(ctx, []line{{item: item, amount: in.Quantity}}, in, false)
		if err != nil {
			return nil, err
		}
		if unitCost != nil {
			newCost := inv.CostCalculator(item.CurrentStock, item.PricePerUnit, in.Quantity, *unitCost)
			if !newCost.Equal(item.PricePerUnit) {
				item.PricePerUnit = newCost
				item.CurrentPrice = *unitCost
				item.UpdatedAt = uc.now()
				if err := uc.itemRepo.Update(ctx, item); err != nil {
					return nil, fmt.Errorf("actualizar costo de %s: %w", item.Name, err)
				}
				priceChanged = true
			}
		}
		updated, err = uc.itemRepo.GetByID(ctx, inventoryItemID)
		return res, err
	})
	if err != nil {
		return nil, false, err
	}
	return updated, priceChanged, nil
}

// ManualReport agrega un checkpoint con el conteo físico y recalcula.
func (uc *ValuationUseCase) ManualReport(ctx context.Context, in ManualReportInput) (decimal.Decimal, error) {
	if in.Amount.IsNegative() || in.InventoryItemID == "" {
		uc.log.Warn().Str("inventory_item_id", in.InventoryItemID).Str("amount", in.Amount.String()).Msg("reporte manual inválido")
		return decimal.Zero, domain.ErrInvalidInput
	}
	release, err := uc.locker.Lock(ctx, LockKey(in.InventoryItemID))
	if err != nil {
		return decimal.Zero, err
	}
	defer release()

	if _, err := uc.requireItem(ctx, in.InventoryItemID); err != nil {
		return decimal.Zero, err
	}
	category := in.Category
	if category == "" {
		category = entity.StockCategoryManualCheck
	}
	amount := in.Amount
	rec := &entity.StockChangeRecord{
		InventoryItemID: in.InventoryItemID,
		ManualReport:    &amount,
		Category:        category,
		ForeignID:       in.ForeignID,
		Date:            uc.dateOrNow(in.Date),
		Reporter:        in.Reporter,
		Description:     in.Description,
		CreatedAt:       uc.now(),
	}
	if err := uc.ledgerRepo.Create(ctx, rec); err != nil {
		return decimal.Zero, fmt.Errorf("registrar reporte manual: %w", err)
	}
	return uc.recalculate(ctx, in.InventoryItemID)
}

// apply agrega un registro por línea como saga y, si todo entra, recalcula cada insumo una vez.
func (uc *ValuationUseCase) apply(ctx context.Context, lines []line, in MovementInput, negative bool) (*MovementResult, error) {
	now := uc.now()
	date := uc.dateOrNow(in.Date)
	records := make([]*entity.StockChangeRecord, 0, len(lines))
	for _, l := range lines {
		amount := l.amount
		if negative {
			amount = amount.Neg()
		}
		records = append(records, &entity.StockChangeRecord{
			InventoryItemID: l.item.ID,
			ChangeAmount:    &amount,
			Category:        in.Category,
			ForeignID:       in.ForeignID,
			Date:            date,
			Reporter:        in.Reporter,
			Description:     in.Description,
			CreatedAt:       now,
		})
	}

	ids, err := newLedgerBatch(uc.ledgerRepo, uc.log).run(ctx, records)
	if err != nil {
		return nil, err
	}

	res := &MovementResult{RecordIDs: ids, Stock: make(map[string]decimal.Decimal, len(lines))}
	for _, l := range lines {
		if _, done := res.Stock[l.item.ID]; done {
			continue
		}
		stock, err := uc.recalculate(ctx, l.item.ID)
		if err != nil {
			return nil, err
		}
		res.Stock[l.item.ID] = stock
	}
	uc.log.Info().
		Str("category", in.Category).
		Str("foreign_id", in.ForeignID).
		Int("records", len(ids)).
		Msg("movimiento de stock registrado")
	return res, nil
}

// MenuAvailability unidades enteras del menú producibles con el stock actual.
// nil si ninguna línea de receta limita (menú sin receta o consumos en cero).
func (uc *ValuationUseCase) MenuAvailability(ctx context.Context, menuID string) (*int64, error) {
	recipes, err := uc.recipeRepo.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	var best *int64
	for _, r := range recipes {
		item, err := uc.itemRepo.GetByID(ctx, r.InventoryItemID)
		if err != nil {
			return nil, err
		}
		stock := decimal.Zero
		if item != nil {
			stock = item.CurrentStock
		}
		n, ok := inv.MaxProducible(stock, r.AmountUsage)
		if !ok {
			continue
		}
		if best == nil || n < *best {
			v := n
			best = &v
		}
	}
	return best, nil
}

// ForecastInventory proyección lineal del stock tras days días.
func (uc *ValuationUseCase) ForecastInventory(ctx context.Context, inventoryItemID string, days int) (decimal.Decimal, error) {
	if days < 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	item, err := uc.requireItem(ctx, inventoryItemID)
	if err != nil {
		return decimal.Zero, err
	}
	return inv.ForecastStock(item.CurrentStock, item.DailyUsage, days), nil
}

// ListLedger registros del insumo, más recientes primero, opcionalmente acotados en [from, to].
func (uc *ValuationUseCase) ListLedger(ctx context.Context, inventoryItemID string, from, to *time.Time) ([]*entity.StockChangeRecord, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.requireItem(ctx, inventoryItemID); err != nil {
		return nil, err
	}
	return uc.ledgerRepo.ListByItem(ctx, inventoryItemID, from, to)
}

// ListLedgerByForeignID registros originados por una misma orden, venta o uso.
func (uc *ValuationUseCase) ListLedgerByForeignID(ctx context.Context, foreignID string) ([]*entity.StockChangeRecord, error) {
	if foreignID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.ListByForeignID(ctx, foreignID)
}

// menuLines resuelve las líneas de receta con consumo > 0 escaladas a quantity.
func (uc *ValuationUseCase) menuLines(ctx context.Context, menuID string, quantity decimal.Decimal) ([]line, error) {
	menu, err := uc.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	recipes, err := uc.recipeRepo.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	lines := make([]line, 0, len(recipes))
	for _, r := range recipes {
		if !r.AmountUsage.IsPositive() {
			continue
		}
		item, err := uc.requireItem(ctx, r.InventoryItemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line{item: item, amount: r.AmountUsage.Mul(quantity)})
	}
	return lines, nil
}

func (uc *ValuationUseCase) menuLockKeys(ctx context.Context, menuID string) ([]string, error) {
	recipes, err := uc.recipeRepo.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(recipes))
	for _, r := range recipes {
		keys = append(keys, LockKey(r.InventoryItemID))
	}
	return keys, nil
}

// menuLockAttempts intentos de alinear las llaves bloqueadas con la receta vigente.
const menuLockAttempts = 3

// withMenuLocks bloquea los insumos de la receta y vuelve a leerla ya con los bloqueos. Si la
// receta ganó un insumo entre ambas lecturas, libera y reintenta con el conjunto nuevo.
func (uc *ValuationUseCase) withMenuLocks(ctx context.Context, menuID string, quantity decimal.Decimal, fn func(lines []line) (*MovementResult, error)) (*MovementResult, error) {
	for attempt := 1; attempt <= menuLockAttempts; attempt++ {
		keys, err := uc.menuLockKeys(ctx, menuID)
		if err != nil {
			return nil, err
		}
		release, err := uc.locker.Lock(ctx, keys...)
		if err != nil {
			return nil, err
		}
		lines, err := uc.menuLines(ctx, menuID, quantity)
		if err != nil {
			release()
			return nil, err
		}
		if covered(keys, lines) {
			defer release()
			return fn(lines)
		}
		release()
		uc.log.Warn().Str("menu_id", menuID).Int("attempt", attempt).Msg("la receta cambió mientras se bloqueaban sus insumos")
	}
	return nil, fmt.Errorf("receta del menú %s en edición: %w", menuID, domain.ErrLockNotObtained)
}

// covered indica si cada insumo de lines tiene su llave en keys.
func covered(keys []string, lines []line) bool {
	locked := make(map[string]bool, len(keys))
	for _, k := range keys {
		locked[k] = true
	}
	for _, l := range lines {
		if !locked[LockKey(l.item.ID)] {
			return false
		}
	}
	return true
}

func (uc *ValuationUseCase) withLocks(ctx context.Context, keys []string, fn func() (*MovementResult, error)) (*MovementResult, error) {
	release, err := uc.locker.Lock(ctx, keys...)
	if err != nil {
		return nil, err
	}
	defer release()
	return fn()
}

func (uc *ValuationUseCase) requireItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *ValuationUseCase) dateOrNow(d *time.Time) time.Time {
	if d != nil && !d.IsZero() {
		return *d
	}
	return uc.now()
}
