package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

// RecipeUseCase líneas de receta (menú × insumo).
type RecipeUseCase struct {
	repo     repository.RecipeRepository
	menuRepo repository.MenuRepository
	itemRepo repository.InventoryItemRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	repo repository.RecipeRepository,
	menuRepo repository.MenuRepository,
	itemRepo repository.InventoryItemRepository,
) *RecipeUseCase {
	return &RecipeUseCase{repo: repo, menuRepo: menuRepo, itemRepo: itemRepo}
}

// Create agrega una línea. Consumo >= 0; el par (menú, insumo) es único.
func (uc *RecipeUseCase) Create(ctx context.Context, menuID string, in dto.CreateRecipeRequest) (*entity.Recipe, error) {
	if in.AmountUsage.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, menuID, in.InventoryItemID); err != nil {
		return nil, err
	}
	now := time.Now()
	recipe := &entity.Recipe{
		MenuID:          menuID,
		InventoryItemID: in.InventoryItemID,
		AmountUsage:     in.AmountUsage,
		Writer:          in.Writer,
		Description:     in.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update cambia la línea. amountChanged indica si cambió el consumo.
func (uc *RecipeUseCase) Update(ctx context.Context, menuID, inventoryItemID string, in dto.UpdateRecipeRequest) (recipe *entity.Recipe, amountChanged bool, err error) {
	recipe, err = uc.repo.Get(ctx, menuID, inventoryItemID)
	if err != nil {
		return nil, false, err
	}
	if recipe == nil {
		return nil, false, domain.ErrNotFound
	}
	if in.AmountUsage != nil {
		if in.AmountUsage.IsNegative() {
			return nil, false, domain.ErrInvalidInput
		}
		amountChanged = !in.AmountUsage.Equal(recipe.AmountUsage)
		recipe.AmountUsage = *in.AmountUsage
	}
	if in.Writer != nil {
		recipe.Writer = *in.Writer
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	recipe.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, recipe); err != nil {
		return nil, false, err
	}
	return recipe, amountChanged, nil
}

// Delete elimina la línea.
func (uc *RecipeUseCase) Delete(ctx context.Context, menuID, inventoryItemID string) error {
	return uc.repo.Delete(ctx, menuID, inventoryItemID)
}

// ListByMenu receta completa del menú.
func (uc *RecipeUseCase) ListByMenu(ctx context.Context, menuID string) ([]*entity.Recipe, error) {
	return uc.repo.ListByMenu(ctx, menuID)
}

func (uc *RecipeUseCase) checkRefs(ctx context.Context, menuID, inventoryItemID string) error {
	menu, err := uc.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return err
	}
	if menu == nil {
		return domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(ctx, inventoryItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return nil
}
