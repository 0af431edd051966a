package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/textnorm"
)

// InventoryItemUseCase catálogo de insumos. CurrentStock se maneja vía ledger.
type InventoryItemUseCase struct {
	repo         repository.InventoryItemRepository
	supplierRepo repository.SupplierRepository
	recipeRepo   repository.RecipeRepository
}

// NewInventoryItemUseCase construye el caso de uso.
func NewInventoryItemUseCase(
	repo repository.InventoryItemRepository,
	supplierRepo repository.SupplierRepository,
	recipeRepo repository.RecipeRepository,
) *InventoryItemUseCase {
	return &InventoryItemUseCase{repo: repo, supplierRepo: supplierRepo, recipeRepo: recipeRepo}
}

// Create crea un insumo con stock 0. El nombre es único sin importar mayúsculas ni espacios.
func (uc *InventoryItemUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	name := textnorm.Clean(in.Name)
	if name == "" || anyNegative(in.CurrentPrice, in.PricePerUnit, in.SafetyStock, in.DailyUsage) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock != nil && in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         name,
		Unit:         in.Unit,
		Category:     in.Category,
		CurrentStock: decimal.Zero,
		CurrentPrice: in.CurrentPrice,
		PricePerUnit: in.PricePerUnit,
		SafetyStock:  in.SafetyStock,
		DailyUsage:   in.DailyUsage,
		SupplierID:   in.SupplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID obtiene un insumo; domain.ErrNotFound si no existe.
func (uc *InventoryItemUseCase) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista todos los insumos ordenados por nombre.
func (uc *InventoryItemUseCase) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repo.List(ctx)
}

// Update edita atributos del insumo. priceChanged indica si cambió PricePerUnit
// (el orquestador recalcula entonces el costo directo de los menús que lo usan).
func (uc *InventoryItemUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (item *entity.InventoryItem, priceChanged bool, err error) {
	item, err = uc.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if in.Name != nil {
		name := textnorm.Clean(*in.Name)
		if name == "" {
			return nil, false, domain.ErrInvalidInput
		}
		if !textnorm.Equal(name, item.Name) {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, false, err
			}
			if other != nil && other.ID != id {
				return nil, false, domain.ErrDuplicate
			}
		}
		item.Name = name
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	for _, v := range []*decimal.Decimal{in.CurrentPrice, in.PricePerUnit, in.SafetyStock, in.DailyUsage} {
		if v != nil && v.IsNegative() {
			return nil, false, domain.ErrInvalidInput
		}
	}
	if in.CurrentPrice != nil {
		item.CurrentPrice = *in.CurrentPrice
	}
	if in.PricePerUnit != nil && !in.PricePerUnit.Equal(item.PricePerUnit) {
		item.PricePerUnit = *in.PricePerUnit
		priceChanged = true
	}
	if in.SafetyStock != nil {
		item.SafetyStock = *in.SafetyStock
	}
	if in.DailyUsage != nil {
		item.DailyUsage = *in.DailyUsage
	}
	if in.SupplierID != nil {
		if err := uc.checkSupplier(ctx, *in.SupplierID); err != nil {
			return nil, false, err
		}
		item.SupplierID = *in.SupplierID
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, false, err
	}
	return item, priceChanged, nil
}

// Delete borra un insumo que ninguna receta usa.
func (uc *InventoryItemUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	used, err := uc.recipeRepo.ListByInventoryItem(ctx, id)
	if err != nil {
		return err
	}
	if len(used) > 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *InventoryItemUseCase) checkSupplier(ctx context.Context, supplierID string) error {
	if supplierID == "" {
		return nil
	}
	sup, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.ErrNotFound
	}
	return nil
}

func anyNegative(values ...decimal.Decimal) bool {
	for _, v := range values {
		if v.IsNegative() {
			return true
		}
	}
	return false
}
