package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeColumns = `menu_id, inventory_item_id, amount_usage, writer, description, created_at, updated_at`

// RecipeRepo líneas de receta sobre PostgreSQL. PK compuesta (menu_id, inventory_item_id).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una línea; el par repetido devuelve domain.ErrDuplicate.
func (r *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		recipe.MenuID, recipe.InventoryItemID, recipe.AmountUsage, recipe.Writer, recipe.Description,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// Get obtiene la línea del par (menú, insumo).
func (r *RecipeRepo) Get(ctx context.Context, menuID, inventoryItemID string) (*entity.Recipe, error) {
	rec, err := scanRecipe(r.q.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE menu_id = $1 AND inventory_item_id = $2`, menuID, inventoryItemID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// Update cambia consumo, autor y descripción.
func (r *RecipeRepo) Update(ctx context.Context, recipe *entity.Recipe) error {
	recipe.UpdatedAt = time.Now()
	tag, err := r.q.Exec(ctx, `
		UPDATE recipes SET amount_usage = $3, writer = $4, description = $5, updated_at = $6
		WHERE menu_id = $1 AND inventory_item_id = $2`,
		recipe.MenuID, recipe.InventoryItemID, recipe.AmountUsage, recipe.Writer, recipe.Description, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la línea.
func (r *RecipeRepo) Delete(ctx context.Context, menuID, inventoryItemID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE menu_id = $1 AND inventory_item_id = $2`, menuID, inventoryItemID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByMenu líneas del menú.
func (r *RecipeRepo) ListByMenu(ctx context.Context, menuID string) ([]*entity.Recipe, error) {
	return r.list(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE menu_id = $1 ORDER BY created_at`, menuID)
}

// ListByInventoryItem líneas que usan el insumo.
func (r *RecipeRepo) ListByInventoryItem(ctx context.Context, inventoryItemID string) ([]*entity.Recipe, error) {
	return r.list(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE inventory_item_id = $1 ORDER BY created_at`, inventoryItemID)
}

func (r *RecipeRepo) list(ctx context.Context, query string, arg string) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	if err := row.Scan(&rec.MenuID, &rec.InventoryItemID, &rec.AmountUsage, &rec.Writer, &rec.Description,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
