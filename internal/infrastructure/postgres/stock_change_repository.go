package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

var _ repository.StockChangeRepository = (*StockChangeRepo)(nil)

const stockChangeColumns = `id, inventory_item_id, change_amount, manual_report, category, foreign_id,
	date, reporter, description, created_at`

// StockChangeRepo ledger de stock sobre PostgreSQL (usable con pool o tx).
// Orden cronológico: date y luego seq (orden de inserción).
type StockChangeRepo struct {
	q Querier
}

// NewStockChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockChangeRepository(q Querier) *StockChangeRepo {
	return &StockChangeRepo{q: q}
}

// Create agrega un registro al ledger.
func (r *StockChangeRepo) Create(ctx context.Context, rec *entity.StockChangeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_changes (id, inventory_item_id, change_amount, manual_report, category, foreign_id,
			date, reporter, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.InventoryItemID, rec.ChangeAmount, rec.ManualReport, rec.Category, nullString(rec.ForeignID),
		rec.Date, rec.Reporter, rec.Description, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock change: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *StockChangeRepo) GetByID(ctx context.Context, id string) (*entity.StockChangeRecord, error) {
	rec, err := scanStockChange(r.q.QueryRow(ctx, `SELECT `+stockChangeColumns+` FROM stock_changes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock change: %w", err)
	}
	return rec, nil
}

// Delete borra un registro. Solo lo usa la compensación de lotes fallidos.
func (r *StockChangeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_changes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LatestCheckpoint registro más reciente con manual_report no nulo.
func (r *StockChangeRepo) LatestCheckpoint(ctx context.Context, inventoryItemID string) (*entity.StockChangeRecord, error) {
	query := `SELECT ` + stockChangeColumns + ` FROM stock_changes
		WHERE inventory_item_id = $1 AND manual_report IS NOT NULL
		ORDER BY date DESC, seq DESC LIMIT 1`
	rec, err := scanStockChange(r.q.QueryRow(ctx, query, inventoryItemID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest checkpoint: %w", err)
	}
	return rec, nil
}

// ListByItem registros del insumo con date en [from, to] (límites opcionales), más recientes primero.
func (r *StockChangeRepo) ListByItem(ctx context.Context, inventoryItemID string, from, to *time.Time) ([]*entity.StockChangeRecord, error) {
	query := `SELECT ` + stockChangeColumns + ` FROM stock_changes
		WHERE inventory_item_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, seq DESC`
	return r.list(ctx, query, inventoryItemID, from, to)
}

// ListByForeignID registros de una orden, venta o uso.
func (r *StockChangeRepo) ListByForeignID(ctx context.Context, foreignID string) ([]*entity.StockChangeRecord, error) {
	query := `SELECT ` + stockChangeColumns + ` FROM stock_changes WHERE foreign_id = $1 ORDER BY date DESC, seq DESC`
	return r.list(ctx, query, foreignID)
}

func (r *StockChangeRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockChangeRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockChangeRecord
	for rows.Next() {
		rec, err := scanStockChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock change: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanStockChange(row pgx.Row) (*entity.StockChangeRecord, error) {
	var rec entity.StockChangeRecord
	var foreignID *string
	err := row.Scan(
		&rec.ID, &rec.InventoryItemID, &rec.ChangeAmount, &rec.ManualReport, &rec.Category, &foreignID,
		&rec.Date, &rec.Reporter, &rec.Description, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ForeignID = derefString(foreignID)
	return &rec, nil
}
