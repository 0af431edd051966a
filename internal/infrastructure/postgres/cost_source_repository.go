package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

var (
	_ repository.CostSourceRepository    = (*CostSourceRepo)(nil)
	_ repository.SalesForecastRepository = (*SalesForecastRepo)(nil)
)

// CostSourceRepo fuentes de costo indirecto sobre PostgreSQL. Ventanas [from, to) semiabiertas.
// Necesita el pool (no una tx) porque CreateShift abre su propia transacción.
type CostSourceRepo struct {
	pool *pgxpool.Pool
}

// NewCostSourceRepository construye el adaptador.
func NewCostSourceRepository(pool *pgxpool.Pool) *CostSourceRepo {
	return &CostSourceRepo{pool: pool}
}

// CreateRent persiste un arriendo.
func (r *CostSourceRepo) CreateRent(ctx context.Context, rent *entity.Rent) error {
	if rent.ID == "" {
		rent.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rents (id, name, rent, mortgage, mortgage_percentage_to_rent, from_date, to_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rent.ID, rent.Name, rent.Rent, rent.Mortgage, rent.MortgagePercentageToRent, rent.FromDate, rent.ToDate, rent.Description,
	)
	if err != nil {
		return fmt.Errorf("insert rent: %w", err)
	}
	return nil
}

// ListRent arriendos con from_date en la ventana.
func (r *CostSourceRepo) ListRent(ctx context.Context, from, to time.Time) ([]*entity.Rent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, rent, mortgage, mortgage_percentage_to_rent, from_date, to_date, description
		FROM rents WHERE from_date >= $1 AND from_date < $2 ORDER BY from_date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list rent: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Rent, error) {
		var x entity.Rent
		err := row.Scan(&x.ID, &x.Name, &x.Rent, &x.Mortgage, &x.MortgagePercentageToRent, &x.FromDate, &x.ToDate, &x.Description)
		return &x, err
	})
}

// CreateBills persiste servicios estimados.
func (r *CostSourceRepo) CreateBills(ctx context.Context, b *entity.EstimatedBills) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO estimated_bills (id, name, category, cost, from_date, to_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Name, b.Category, b.Cost, b.FromDate, b.ToDate, b.Description,
	)
	if err != nil {
		return fmt.Errorf("insert bills: %w", err)
	}
	return nil
}

// ListBills servicios con from_date en la ventana.
func (r *CostSourceRepo) ListBills(ctx context.Context, from, to time.Time) ([]*entity.EstimatedBills, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, cost, from_date, to_date, description
		FROM estimated_bills WHERE from_date >= $1 AND from_date < $2 ORDER BY from_date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.EstimatedBills, error) {
		var x entity.EstimatedBills
		err := row.Scan(&x.ID, &x.Name, &x.Category, &x.Cost, &x.FromDate, &x.ToDate, &x.Description)
		return &x, err
	})
}

// CreateEquipment persiste un equipo.
func (r *CostSourceRepo) CreateEquipment(ctx context.Context, e *entity.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO equipment (id, name, category, purchase_price, monthly_depreciation, purchase_date, expiration_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Name, e.Category, e.PurchasePrice, e.MonthlyDepreciation, e.PurchaseDate, e.ExpirationDate, e.Description,
	)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// ListEquipment equipos comprados antes de to y vigentes en from.
func (r *CostSourceRepo) ListEquipment(ctx context.Context, from, to time.Time) ([]*entity.Equipment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, purchase_price, monthly_depreciation, purchase_date, expiration_date, description
		FROM equipment WHERE purchase_date < $2 AND expiration_date >= $1 ORDER BY purchase_date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Equipment, error) {
		var x entity.Equipment
		err := row.Scan(&x.ID, &x.Name, &x.Category, &x.PurchasePrice, &x.MonthlyDepreciation, &x.PurchaseDate, &x.ExpirationDate, &x.Description)
		return &x, err
	})
}

// CreatePosition persiste un cargo.
func (r *CostSourceRepo) CreatePosition(ctx context.Context, p *entity.TargetPositionAndSalary) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO target_positions (id, name, monthly_hours, monthly_payment, monthly_insurance, extra_hour_payment)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.MonthlyHours, p.MonthlyPayment, p.MonthlyInsurance, p.ExtraHourPayment,
	)
	if err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// GetPosition obtiene un cargo por ID.
func (r *CostSourceRepo) GetPosition(ctx context.Context, id string) (*entity.TargetPositionAndSalary, error) {
	var p entity.TargetPositionAndSalary
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, monthly_hours, monthly_payment, monthly_insurance, extra_hour_payment
		FROM target_positions WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.MonthlyHours, &p.MonthlyPayment, &p.MonthlyInsurance, &p.ExtraHourPayment)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return &p, nil
}

// CreateShift persiste el turno y sus asignaciones en una sola transacción.
func (r *CostSourceRepo) CreateShift(ctx context.Context, sh *entity.Shift) error {
	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO shifts (id, name, from_date, to_date, extra_payment, description)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sh.ID, sh.Name, sh.FromDate, sh.ToDate, sh.ExtraPayment, sh.Description,
	); err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	for i := range sh.Labor {
		l := &sh.Labor[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.ShiftID = sh.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO estimated_labor (id, shift_id, position_id, number_of_staff, extra_hours)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.ShiftID, l.PositionID, l.NumberOfStaff, l.ExtraHours,
		); err != nil {
			return fmt.Errorf("insert estimated labor: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetShift obtiene un turno con sus asignaciones.
func (r *CostSourceRepo) GetShift(ctx context.Context, id string) (*entity.Shift, error) {
	shifts, err := r.queryShifts(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, nil
	}
	return shifts[0], nil
}

// ListShifts turnos con from_date en la ventana, con sus asignaciones.
func (r *CostSourceRepo) ListShifts(ctx context.Context, from, to time.Time) ([]*entity.Shift, error) {
	return r.queryShifts(ctx, `WHERE from_date >= $1 AND from_date < $2`, from, to)
}

func (r *CostSourceRepo) queryShifts(ctx context.Context, where string, args ...any) ([]*entity.Shift, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, from_date, to_date, extra_payment, description FROM shifts `+where+` ORDER BY from_date`, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	shifts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Shift, error) {
		var x entity.Shift
		err := row.Scan(&x.ID, &x.Name, &x.FromDate, &x.ToDate, &x.ExtraPayment, &x.Description)
		return &x, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan shift: %w", err)
	}
	if len(shifts) == 0 {
		return shifts, nil
	}

	ids := make([]string, len(shifts))
	byID := make(map[string]*entity.Shift, len(shifts))
	for i, sh := range shifts {
		ids[i] = sh.ID
		byID[sh.ID] = sh
	}
	lrows, err := r.pool.Query(ctx, `
		SELECT id, shift_id, position_id, number_of_staff, extra_hours
		FROM estimated_labor WHERE shift_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list estimated labor: %w", err)
	}
	labor, err := pgx.CollectRows(lrows, func(row pgx.CollectableRow) (entity.EstimatedLabor, error) {
		var l entity.EstimatedLabor
		err := row.Scan(&l.ID, &l.ShiftID, &l.PositionID, &l.NumberOfStaff, &l.ExtraHours)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan estimated labor: %w", err)
	}
	for _, l := range labor {
		if sh, ok := byID[l.ShiftID]; ok {
			sh.Labor = append(sh.Labor, l)
		}
	}
	return shifts, nil
}

// SalesForecastRepo pronósticos de ventas sobre PostgreSQL.
type SalesForecastRepo struct {
	q Querier
}

// NewSalesForecastRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesForecastRepository(q Querier) *SalesForecastRepo {
	return &SalesForecastRepo{q: q}
}

// Create persiste un pronóstico.
func (r *SalesForecastRepo) Create(ctx context.Context, f *entity.SalesForecast) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_forecasts (id, from_date, to_date, sales_forecast, description)
		VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.FromDate, f.ToDate, f.SalesForecast, f.Description,
	)
	if err != nil {
		return fmt.Errorf("insert sales forecast: %w", err)
	}
	return nil
}

// ListInWindow pronósticos con from_date en la ventana.
func (r *SalesForecastRepo) ListInWindow(ctx context.Context, from, to time.Time) ([]*entity.SalesForecast, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, from_date, to_date, sales_forecast, description
		FROM sales_forecasts WHERE from_date >= $1 AND from_date < $2 ORDER BY from_date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales forecasts: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SalesForecast, error) {
		var x entity.SalesForecast
		err := row.Scan(&x.ID, &x.FromDate, &x.ToDate, &x.SalesForecast, &x.Description)
		return &x, err
	})
}

// Delete borra un pronóstico.
func (r *SalesForecastRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales_forecasts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales forecast: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
