package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/textnorm"
)

var (
	_ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
	_ repository.StockChangeRepository   = (*StockChangeRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
)

// InventoryItemRepo insumos en memoria.
type InventoryItemRepo struct {
	s *Store
}

func (r *InventoryItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := textnorm.Key(item.Name)
	for _, it := range r.s.items {
		if textnorm.Key(it.Name) == key {
			return domain.ErrDuplicate
		}
	}
	item.ID = newID(item.ID)
	r.s.items[item.ID] = *item
	return nil
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *InventoryItemRepo) GetByName(_ context.Context, name string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	key := textnorm.Key(name)
	for _, it := range r.s.items {
		if textnorm.Key(it.Name) == key {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner ya serializa.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.InventoryItem, 0, len(r.s.items))
	for _, it := range r.s.items {
		it := it
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *InventoryItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	key := textnorm.Key(item.Name)
	for id, it := range r.s.items {
		if id != item.ID && textnorm.Key(it.Name) == key {
			return domain.ErrDuplicate
		}
	}
	upd := *item
	upd.CurrentStock = cur.CurrentStock
	upd.CreatedAt = cur.CreatedAt
	r.s.items[item.ID] = upd
	return nil
}

func (r *InventoryItemRepo) UpdateCurrentStock(_ context.Context, id string, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = stock
	it.UpdatedAt = time.Now()
	r.s.items[id] = it
	return nil
}

func (r *InventoryItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

// StockChangeRepo ledger de stock en memoria.
type StockChangeRepo struct {
	s *Store
}

func (r *StockChangeRepo) Create(_ context.Context, rec *entity.StockChangeRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.ID = newID(rec.ID)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	cp.ChangeAmount = cloneDec(rec.ChangeAmount)
	cp.ManualReport = cloneDec(rec.ManualReport)
	r.s.ledger[rec.ID] = ledgerRow{rec: cp, seq: r.s.nextSeq()}
	return nil
}

func (r *StockChangeRepo) GetByID(_ context.Context, id string) (*entity.StockChangeRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.ledger[id]
	if !ok {
		return nil, nil
	}
	rec := row.rec
	return &rec, nil
}

func (r *StockChangeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ledger[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.ledger, id)
	return nil
}

func (r *StockChangeRepo) LatestCheckpoint(_ context.Context, itemID string) (*entity.StockChangeRecord, error) {
	rows := r.filter(func(rec *entity.StockChangeRecord) bool {
		return rec.InventoryItemID == itemID && rec.ManualReport != nil
	})
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *StockChangeRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time) ([]*entity.StockChangeRecord, error) {
	return r.filter(func(rec *entity.StockChangeRecord) bool {
		if rec.InventoryItemID != itemID {
			return false
		}
		if from != nil && rec.Date.Before(*from) {
			return false
		}
		if to != nil && rec.Date.After(*to) {
			return false
		}
		return true
	}), nil
}

func (r *StockChangeRepo) ListByForeignID(_ context.Context, foreignID string) ([]*entity.StockChangeRecord, error) {
	return r.filter(func(rec *entity.StockChangeRecord) bool {
		return foreignID != "" && rec.ForeignID == foreignID
	}), nil
}

// Count total de registros del ledger (útil en tests).
func (r *StockChangeRepo) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.ledger)
}

func (r *StockChangeRepo) filter(keep func(*entity.StockChangeRecord) bool) []*entity.StockChangeRecord {
	r.s.mu.RLock()
	rows := make([]ledgerRow, 0)
	for _, row := range r.s.ledger {
		row := row
		if keep(&row.rec) {
			rows = append(rows, row)
		}
	}
	r.s.mu.RUnlock()

	sortByDateDesc(rows)
	list := make([]*entity.StockChangeRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.rec
		list = append(list, &rec)
	}
	return list
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup.ID = newID(sup.ID)
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		sup := sup
		list = append(list, &sup)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
