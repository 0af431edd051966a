package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

var (
	_ repository.CostSourceRepository    = (*CostSourceRepo)(nil)
	_ repository.SalesForecastRepository = (*SalesForecastRepo)(nil)
)

// CostSourceRepo fuentes de costo indirecto en memoria.
type CostSourceRepo struct {
	s *Store
}

func (r *CostSourceRepo) CreateRent(_ context.Context, rent *entity.Rent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rent.ID = newID(rent.ID)
	r.s.rents[rent.ID] = *rent
	return nil
}

func (r *CostSourceRepo) ListRent(_ context.Context, from, to time.Time) ([]*entity.Rent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Rent, 0)
	for _, rent := range r.s.rents {
		rent := rent
		if inWindow(rent.FromDate, from, to) {
			list = append(list, &rent)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FromDate.Before(list[j].FromDate) })
	return list, nil
}

func (r *CostSourceRepo) CreateBills(_ context.Context, bills *entity.EstimatedBills) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bills.ID = newID(bills.ID)
	r.s.bills[bills.ID] = *bills
	return nil
}

func (r *CostSourceRepo) ListBills(_ context.Context, from, to time.Time) ([]*entity.EstimatedBills, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.EstimatedBills, 0)
	for _, b := range r.s.bills {
		b := b
		if inWindow(b.FromDate, from, to) {
			list = append(list, &b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FromDate.Before(list[j].FromDate) })
	return list, nil
}

func (r *CostSourceRepo) CreateEquipment(_ context.Context, eq *entity.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	eq.ID = newID(eq.ID)
	r.s.equipment[eq.ID] = *eq
	return nil
}

func (r *CostSourceRepo) ListEquipment(_ context.Context, from, to time.Time) ([]*entity.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Equipment, 0)
	for _, eq := range r.s.equipment {
		eq := eq
		if eq.PurchaseDate.Before(to) && !eq.ExpirationDate.Before(from) {
			list = append(list, &eq)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PurchaseDate.Before(list[j].PurchaseDate) })
	return list, nil
}

func (r *CostSourceRepo) CreatePosition(_ context.Context, pos *entity.TargetPositionAndSalary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pos.ID = newID(pos.ID)
	cp := *pos
	cp.ExtraHourPayment = cloneDec(pos.ExtraHourPayment)
	r.s.positions[pos.ID] = cp
	return nil
}

func (r *CostSourceRepo) GetPosition(_ context.Context, id string) (*entity.TargetPositionAndSalary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	pos, ok := r.s.positions[id]
	if !ok {
		return nil, nil
	}
	pos.ExtraHourPayment = cloneDec(pos.ExtraHourPayment)
	return &pos, nil
}

func (r *CostSourceRepo) CreateShift(_ context.Context, shift *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shift.ID = newID(shift.ID)
	for i := range shift.Labor {
		shift.Labor[i].ID = newID(shift.Labor[i].ID)
		shift.Labor[i].ShiftID = shift.ID
	}
	r.s.shifts[shift.ID] = copyShift(shift)
	return nil
}

func (r *CostSourceRepo) GetShift(_ context.Context, id string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return nil, nil
	}
	cp := copyShift(&sh)
	return &cp, nil
}

func (r *CostSourceRepo) ListShifts(_ context.Context, from, to time.Time) ([]*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Shift, 0)
	for _, sh := range r.s.shifts {
		sh := sh
		if inWindow(sh.FromDate, from, to) {
			cp := copyShift(&sh)
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FromDate.Before(list[j].FromDate) })
	return list, nil
}

func copyShift(sh *entity.Shift) entity.Shift {
	cp := *sh
	cp.Labor = append([]entity.EstimatedLabor(nil), sh.Labor...)
	return cp
}

// SalesForecastRepo pronósticos de ventas en memoria.
type SalesForecastRepo struct {
	s *Store
}

func (r *SalesForecastRepo) Create(_ context.Context, f *entity.SalesForecast) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.ID = newID(f.ID)
	r.s.forecasts[f.ID] = *f
	return nil
}

func (r *SalesForecastRepo) ListInWindow(_ context.Context, from, to time.Time) ([]*entity.SalesForecast, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.SalesForecast, 0)
	for _, f := range r.s.forecasts {
		f := f
		if inWindow(f.FromDate, from, to) {
			list = append(list, &f)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FromDate.Before(list[j].FromDate) })
	return list, nil
}

func (r *SalesForecastRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.forecasts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.forecasts, id)
	return nil
}
