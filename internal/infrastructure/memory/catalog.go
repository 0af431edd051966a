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
	_ repository.MenuRepository          = (*MenuRepo)(nil)
	_ repository.RecipeRepository        = (*RecipeRepo)(nil)
	_ repository.PriceEstimateRepository = (*PriceEstimateRepo)(nil)
)

// MenuRepo carta en memoria.
type MenuRepo struct {
	s *Store
}

func sameMenu(a *entity.Menu, name, size string) bool {
	return textnorm.Equal(a.Name, name) && textnorm.Equal(a.Size, size)
}

func (r *MenuRepo) Create(_ context.Context, menu *entity.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.menus {
		m := m
		if sameMenu(&m, menu.Name, menu.Size) {
			return domain.ErrDuplicate
		}
	}
	menu.ID = newID(menu.ID)
	cp := *menu
	cp.SuggestedPrice = cloneDec(menu.SuggestedPrice)
	r.s.menus[menu.ID] = cp
	return nil
}

func (r *MenuRepo) GetByID(_ context.Context, id string) (*entity.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.menus[id]
	if !ok {
		return nil, nil
	}
	m.SuggestedPrice = cloneDec(m.SuggestedPrice)
	return &m, nil
}

func (r *MenuRepo) GetByNameAndSize(_ context.Context, name, size string) (*entity.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.menus {
		m := m
		if sameMenu(&m, name, size) {
			m.SuggestedPrice = cloneDec(m.SuggestedPrice)
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MenuRepo) List(_ context.Context) ([]*entity.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Menu, 0, len(r.s.menus))
	for _, m := range r.s.menus {
		m := m
		m.SuggestedPrice = cloneDec(m.SuggestedPrice)
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Size < list[j].Size
	})
	return list, nil
}

func (r *MenuRepo) Update(_ context.Context, menu *entity.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.menus[menu.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, m := range r.s.menus {
		m := m
		if id != menu.ID && sameMenu(&m, menu.Name, menu.Size) {
			return domain.ErrDuplicate
		}
	}
	upd := *menu
	upd.CurrentPrice = cur.CurrentPrice
	upd.SuggestedPrice = cur.SuggestedPrice
	upd.CreatedAt = cur.CreatedAt
	r.s.menus[menu.ID] = upd
	return nil
}

func (r *MenuRepo) UpdatePrices(_ context.Context, id string, current decimal.Decimal, suggested *decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.menus[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentPrice = current
	if suggested != nil {
		m.SuggestedPrice = cloneDec(suggested)
	}
	m.UpdatedAt = time.Now()
	r.s.menus[id] = m
	return nil
}

func (r *MenuRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.menus[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.menus, id)
	for k := range r.s.recipes {
		if k.menuID == id {
			delete(r.s.recipes, k)
		}
	}
	for eid, row := range r.s.estimates {
		if row.rec.MenuID == id {
			delete(r.s.estimates, eid)
		}
	}
	return nil
}

// RecipeRepo líneas de receta en memoria.
type RecipeRepo struct {
	s *Store
}

func (r *RecipeRepo) Create(_ context.Context, recipe *entity.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := recipeKey{recipe.MenuID, recipe.InventoryItemID}
	if _, ok := r.s.recipes[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.recipes[key] = *recipe
	return nil
}

func (r *RecipeRepo) Get(_ context.Context, menuID, inventoryItemID string) (*entity.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.recipes[recipeKey{menuID, inventoryItemID}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *RecipeRepo) Update(_ context.Context, recipe *entity.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := recipeKey{recipe.MenuID, recipe.InventoryItemID}
	if _, ok := r.s.recipes[key]; !ok {
		return domain.ErrNotFound
	}
	r.s.recipes[key] = *recipe
	return nil
}

func (r *RecipeRepo) Delete(_ context.Context, menuID, inventoryItemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := recipeKey{menuID, inventoryItemID}
	if _, ok := r.s.recipes[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.recipes, key)
	return nil
}

func (r *RecipeRepo) ListByMenu(_ context.Context, menuID string) ([]*entity.Recipe, error) {
	return r.filter(func(rec *entity.Recipe) bool { return rec.MenuID == menuID }), nil
}

func (r *RecipeRepo) ListByInventoryItem(_ context.Context, inventoryItemID string) ([]*entity.Recipe, error) {
	return r.filter(func(rec *entity.Recipe) bool { return rec.InventoryItemID == inventoryItemID }), nil
}

func (r *RecipeRepo) filter(keep func(*entity.Recipe) bool) []*entity.Recipe {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Recipe, 0)
	for _, rec := range r.s.recipes {
		rec := rec
		if keep(&rec) {
			list = append(list, &rec)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].MenuID != list[j].MenuID {
			return list[i].MenuID < list[j].MenuID
		}
		return list[i].InventoryItemID < list[j].InventoryItemID
	})
	return list
}

// PriceEstimateRepo historial de precios estimados en memoria.
type PriceEstimateRepo struct {
	s *Store
}

func (r *PriceEstimateRepo) Create(_ context.Context, rec *entity.EstimatedMenuPriceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.ID = newID(rec.ID)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	cp.EstimatedPrice = cloneDec(rec.EstimatedPrice)
	r.s.estimates[rec.ID] = estimateRow{rec: cp, seq: r.s.nextSeq()}
	return nil
}

func (r *PriceEstimateRepo) Latest(_ context.Context, menuID string) (*entity.EstimatedMenuPriceRecord, error) {
	list := r.filter(func(rec *entity.EstimatedMenuPriceRecord) bool { return rec.MenuID == menuID }, 1)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *PriceEstimateRepo) LatestAny(_ context.Context) (*entity.EstimatedMenuPriceRecord, error) {
	list := r.filter(func(*entity.EstimatedMenuPriceRecord) bool { return true }, 1)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *PriceEstimateRepo) ListByMenu(_ context.Context, menuID string, limit int) ([]*entity.EstimatedMenuPriceRecord, error) {
	return r.filter(func(rec *entity.EstimatedMenuPriceRecord) bool { return rec.MenuID == menuID }, limit), nil
}

func (r *PriceEstimateRepo) CountByMenu(_ context.Context, menuID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, row := range r.s.estimates {
		if row.rec.MenuID == menuID {
			n++
		}
	}
	return n, nil
}

// filter aplica limit <= 0 como "sin límite".
func (r *PriceEstimateRepo) filter(keep func(*entity.EstimatedMenuPriceRecord) bool, limit int) []*entity.EstimatedMenuPriceRecord {
	r.s.mu.RLock()
	rows := make([]estimateRow, 0)
	for _, row := range r.s.estimates {
		row := row
		if keep(&row.rec) {
			rows = append(rows, row)
		}
	}
	r.s.mu.RUnlock()

	sortEstimatesDesc(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	list := make([]*entity.EstimatedMenuPriceRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.rec
		rec.EstimatedPrice = cloneDec(rec.EstimatedPrice)
		list = append(list, &rec)
	}
	return list
}
