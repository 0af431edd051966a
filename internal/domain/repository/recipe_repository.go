package repository

import (
	"context"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// RecipeRepository define el puerto para las líneas de receta (menú × insumo).
type RecipeRepository interface {
	// Create devuelve domain.ErrDuplicate si el par (menú, insumo) ya existe.
	Create(ctx context.Context, recipe *entity.Recipe) error
	Get(ctx context.Context, menuID, inventoryItemID string) (*entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, menuID, inventoryItemID string) error
	ListByMenu(ctx context.Context, menuID string) ([]*entity.Recipe, error)
	ListByInventoryItem(ctx context.Context, inventoryItemID string) ([]*entity.Recipe, error)
}
