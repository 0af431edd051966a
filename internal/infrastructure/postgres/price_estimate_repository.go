package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

var _ repository.PriceEstimateRepository = (*PriceEstimateRepo)(nil)

const priceEstimateColumns = `id, menu_id, sales_forecast, estimated_indirect_costs, direct_cost, profit_margin,
	manual_price, estimated_price, category, from_date, description, created_at`

// PriceEstimateRepo historial versionado de precios sobre PostgreSQL.
// Más recientes primero: from_date y luego seq.
type PriceEstimateRepo struct {
	q Querier
}

// NewPriceEstimateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceEstimateRepository(q Querier) *PriceEstimateRepo {
	return &PriceEstimateRepo{q: q}
}

// Create agrega un registro de precio.
func (r *PriceEstimateRepo) Create(ctx context.Context, rec *entity.EstimatedMenuPriceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO menu_price_estimates (`+priceEstimateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.MenuID, rec.SalesForecast, rec.EstimatedIndirectCosts, rec.DirectCost, rec.ProfitMargin,
		rec.ManualPrice, rec.EstimatedPrice, rec.Category, rec.FromDate, rec.Description, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price estimate: %w", err)
	}
	return nil
}

// Latest último registro del menú.
func (r *PriceEstimateRepo) Latest(ctx context.Context, menuID string) (*entity.EstimatedMenuPriceRecord, error) {
	return r.getOne(ctx, `SELECT `+priceEstimateColumns+` FROM menu_price_estimates
		WHERE menu_id = $1 ORDER BY from_date DESC, seq DESC LIMIT 1`, menuID)
}

// LatestAny último registro de cualquier menú.
func (r *PriceEstimateRepo) LatestAny(ctx context.Context) (*entity.EstimatedMenuPriceRecord, error) {
	return r.getOne(ctx, `SELECT `+priceEstimateColumns+` FROM menu_price_estimates
		ORDER BY from_date DESC, seq DESC LIMIT 1`)
}

// ListByMenu historial del menú; limit <= 0 = sin límite.
func (r *PriceEstimateRepo) ListByMenu(ctx context.Context, menuID string, limit int) ([]*entity.EstimatedMenuPriceRecord, error) {
	query := `SELECT ` + priceEstimateColumns + ` FROM menu_price_estimates
		WHERE menu_id = $1 ORDER BY from_date DESC, seq DESC`
	args := []any{menuID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price estimates: %w", err)
	}
	defer rows.Close()
	var list []*entity.EstimatedMenuPriceRecord
	for rows.Next() {
		rec, err := scanPriceEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price estimate: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// CountByMenu cantidad de registros del menú.
func (r *PriceEstimateRepo) CountByMenu(ctx context.Context, menuID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM menu_price_estimates WHERE menu_id = $1`, menuID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count price estimates: %w", err)
	}
	return n, nil
}

func (r *PriceEstimateRepo) getOne(ctx context.Context, query string, args ...any) (*entity.EstimatedMenuPriceRecord, error) {
	rec, err := scanPriceEstimate(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price estimate: %w", err)
	}
	return rec, nil
}

func scanPriceEstimate(row pgx.Row) (*entity.EstimatedMenuPriceRecord, error) {
	var rec entity.EstimatedMenuPriceRecord
	err := row.Scan(
		&rec.ID, &rec.MenuID, &rec.SalesForecast, &rec.EstimatedIndirectCosts, &rec.DirectCost, &rec.ProfitMargin,
		&rec.ManualPrice, &rec.EstimatedPrice, &rec.Category, &rec.FromDate, &rec.Description, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
