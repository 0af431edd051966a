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

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, name, unit, category, current_stock, current_price, price_per_unit,
	safety_stock, daily_usage, supplier_id, created_at, updated_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un insumo. name_key guarda la clave normalizada para la unicidad.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	query := `
		INSERT INTO inventory_items (id, name, name_key, unit, category, current_stock, current_price, price_per_unit,
			safety_stock, daily_usage, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, textnorm.Key(item.Name), item.Unit, item.Category, item.CurrentStock,
		item.CurrentPrice, item.PricePerUnit, item.SafetyStock, item.DailyUsage, nullString(item.SupplierID),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetByName busca por clave normalizada.
func (r *InventoryItemRepo) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE name_key = $1`, textnorm.Key(name))
}

// GetForUpdate obtiene el insumo bloqueando la fila (SELECT FOR UPDATE). Usar dentro de una transacción.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// List todos los insumos ordenados por nombre.
func (r *InventoryItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items ORDER BY name_key`)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update modifica atributos; current_stock solo cambia vía UpdateCurrentStock.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	item.UpdatedAt = time.Now()
	query := `
		UPDATE inventory_items
		SET name = $2, name_key = $3, unit = $4, category = $5, current_price = $6, price_per_unit = $7,
			safety_stock = $8, daily_usage = $9, supplier_id = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, textnorm.Key(item.Name), item.Unit, item.Category, item.CurrentPrice,
		item.PricePerUnit, item.SafetyStock, item.DailyUsage, nullString(item.SupplierID), item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCurrentStock escribe el caché de stock.
func (r *InventoryItemRepo) UpdateCurrentStock(ctx context.Context, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_stock = $2, updated_at = NOW() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update current stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el insumo; su ledger y sus líneas de receta caen en cascada.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query string, arg any) (*entity.InventoryItem, error) {
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var supplierID *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Unit, &it.Category, &it.CurrentStock, &it.CurrentPrice, &it.PricePerUnit,
		&it.SafetyStock, &it.DailyUsage, &supplierID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.SupplierID = derefString(supplierID)
	return &it, nil
}
