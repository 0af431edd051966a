package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/textnorm"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

const menuColumns = `id, name, size, category, current_price, suggested_price, value_added_tax,
	serving, description, created_at, updated_at`

// MenuRepo carta sobre PostgreSQL. (name_key, size_key) es único.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// Create persiste un menú.
func (r *MenuRepo) Create(ctx context.Context, menu *entity.Menu) error {
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}
	now := time.Now()
	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = now
	}
	if menu.UpdatedAt.IsZero() {
		menu.UpdatedAt = now
	}
	query := `
		INSERT INTO menus (id, name, size, name_key, size_key, category, current_price, suggested_price,
			value_added_tax, serving, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		menu.ID, menu.Name, menu.Size, textnorm.Key(menu.Name), textnorm.Key(menu.Size), menu.Category,
		menu.CurrentPrice, menu.SuggestedPrice, menu.ValueAddedTax, menu.Serving, menu.Description,
		menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

// GetByID obtiene un menú por ID.
func (r *MenuRepo) GetByID(ctx context.Context, id string) (*entity.Menu, error) {
	return r.getOne(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id)
}

// GetByNameAndSize busca por nombre y tamaño normalizados.
func (r *MenuRepo) GetByNameAndSize(ctx context.Context, name, size string) (*entity.Menu, error) {
	return r.getOne(ctx, `SELECT `+menuColumns+` FROM menus WHERE name_key = $1 AND size_key = $2`,
		textnorm.Key(name), textnorm.Key(size))
}

// List la carta completa ordenada por nombre y tamaño.
func (r *MenuRepo) List(ctx context.Context) ([]*entity.Menu, error) {
	rows, err := r.q.Query(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY name_key, size_key`)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()
	var list []*entity.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update modifica atributos de catálogo; no toca precios.
func (r *MenuRepo) Update(ctx context.Context, menu *entity.Menu) error {
	menu.UpdatedAt = time.Now()
	query := `
		UPDATE menus
		SET name = $2, size = $3, name_key = $4, size_key = $5, category = $6, value_added_tax = $7,
			serving = $8, description = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		menu.ID, menu.Name, menu.Size, textnorm.Key(menu.Name), textnorm.Key(menu.Size), menu.Category,
		menu.ValueAddedTax, menu.Serving, menu.Description, menu.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrices escribe el caché de precios; suggested nil conserva el valor anterior.
func (r *MenuRepo) UpdatePrices(ctx context.Context, id string, current decimal.Decimal, suggested *decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE menus
		SET current_price = $2, suggested_price = COALESCE($3, suggested_price), updated_at = NOW()
		WHERE id = $1`, id, current, suggested)
	if err != nil {
		return fmt.Errorf("update menu prices: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el menú; recetas e historial de precios caen por ON DELETE CASCADE.
func (r *MenuRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Menu, error) {
	m, err := scanMenu(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return m, nil
}

func scanMenu(row pgx.Row) (*entity.Menu, error) {
	var m entity.Menu
	err := row.Scan(
		&m.ID, &m.Name, &m.Size, &m.Category, &m.CurrentPrice, &m.SuggestedPrice, &m.ValueAddedTax,
		&m.Serving, &m.Description, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
