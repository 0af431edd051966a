// Package memory implementa los puertos de persistencia en memoria.
// Se usa en modo demo (STORE_DRIVER=memory) y en los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

type recipeKey struct {
	menuID          string
	inventoryItemID string
}

type ledgerRow struct {
	rec entity.StockChangeRecord
	seq int64
}

type estimateRow struct {
	rec entity.EstimatedMenuPriceRecord
	seq int64
}

// Store guarda todas las entidades del back-office en mapas protegidos por un RWMutex.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	seq  int64

	items     map[string]entity.InventoryItem
	ledger    map[string]ledgerRow
	menus     map[string]entity.Menu
	recipes   map[recipeKey]entity.Recipe
	estimates map[string]estimateRow
	suppliers map[string]entity.Supplier
	rents     map[string]entity.Rent
	bills     map[string]entity.EstimatedBills
	equipment map[string]entity.Equipment
	positions map[string]entity.TargetPositionAndSalary
	shifts    map[string]entity.Shift
	forecasts map[string]entity.SalesForecast
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{
		items:     make(map[string]entity.InventoryItem),
		ledger:    make(map[string]ledgerRow),
		menus:     make(map[string]entity.Menu),
		recipes:   make(map[recipeKey]entity.Recipe),
		estimates: make(map[string]estimateRow),
		suppliers: make(map[string]entity.Supplier),
		rents:     make(map[string]entity.Rent),
		bills:     make(map[string]entity.EstimatedBills),
		equipment: make(map[string]entity.Equipment),
		positions: make(map[string]entity.TargetPositionAndSalary),
		shifts:    make(map[string]entity.Shift),
		forecasts: make(map[string]entity.SalesForecast),
	}
}

// Repositorios tipados sobre el mismo almacén.

func (s *Store) InventoryItems() *InventoryItemRepo   { return &InventoryItemRepo{s: s} }
func (s *Store) StockChanges() *StockChangeRepo       { return &StockChangeRepo{s: s} }
func (s *Store) Menus() *MenuRepo                     { return &MenuRepo{s: s} }
func (s *Store) Recipes() *RecipeRepo                 { return &RecipeRepo{s: s} }
func (s *Store) PriceEstimates() *PriceEstimateRepo   { return &PriceEstimateRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo             { return &SupplierRepo{s: s} }
func (s *Store) CostSources() *CostSourceRepo         { return &CostSourceRepo{s: s} }
func (s *Store) SalesForecasts() *SalesForecastRepo   { return &SalesForecastRepo{s: s} }
func (s *Store) TxRunner() *TxRunner                  { return &TxRunner{s: s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// TxRunner serializa las "transacciones" en memoria con un mutex global.
// No hay rollback: las escrituras de fn quedan aplicadas aunque fn falle.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con los repositorios del almacén mientras mantiene el mutex de transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	ledgerRepo repository.StockChangeRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(r.s.InventoryItems(), r.s.StockChanges())
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func cloneDec(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func sortByDateDesc(rows []ledgerRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].rec.Date.Equal(rows[j].rec.Date) {
			return rows[i].rec.Date.After(rows[j].rec.Date)
		}
		return rows[i].seq > rows[j].seq
	})
}

func sortEstimatesDesc(rows []estimateRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].rec.FromDate.Equal(rows[j].rec.FromDate) {
			return rows[i].rec.FromDate.After(rows[j].rec.FromDate)
		}
		return rows[i].seq > rows[j].seq
	})
}
