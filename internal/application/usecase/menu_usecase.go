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

var one = decimal.NewFromInt(1)

// MenuUseCase catálogo de la carta. CurrentPrice y SuggestedPrice los escribe el motor de costeo.
type MenuUseCase struct {
	repo repository.MenuRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(repo repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create crea un menú. (nombre, tamaño) es único con comparación normalizada; IVA en [0,1].
func (uc *MenuUseCase) Create(ctx context.Context, in dto.CreateMenuItemRequest) (*entity.Menu, error) {
	name := textnorm.Clean(in.Name)
	size := textnorm.Clean(in.Size)
	if name == "" || !isFraction(in.ValueAddedTax) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNameAndSize(ctx, name, size)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	serving := true
	if in.Serving != nil {
		serving = *in.Serving
	}
	now := time.Now()
	menu := &entity.Menu{
		ID:            uuid.New().String(),
		Name:          name,
		Size:          size,
		Category:      in.Category,
		CurrentPrice:  decimal.Zero,
		ValueAddedTax: in.ValueAddedTax,
		Serving:       serving,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// GetByID obtiene un menú; domain.ErrNotFound si no existe.
func (uc *MenuUseCase) GetByID(ctx context.Context, id string) (*entity.Menu, error) {
	menu, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	return menu, nil
}

// List toda la carta.
func (uc *MenuUseCase) List(ctx context.Context) ([]*entity.Menu, error) {
	return uc.repo.List(ctx)
}

// Update edita atributos de catálogo. Los campos de precio del request los resuelve el orquestador.
func (uc *MenuUseCase) Update(ctx context.Context, id string, in dto.UpdateMenuItemRequest) (*entity.Menu, error) {
	menu, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, size := menu.Name, menu.Size
	if in.Name != nil {
		name = textnorm.Clean(*in.Name)
	}
	if in.Size != nil {
		size = textnorm.Clean(*in.Size)
	}
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !textnorm.Equal(name, menu.Name) || !textnorm.Equal(size, menu.Size) {
		other, err := uc.repo.GetByNameAndSize(ctx, name, size)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	menu.Name, menu.Size = name, size
	if in.Category != nil {
		menu.Category = *in.Category
	}
	if in.ValueAddedTax != nil {
		if !isFraction(*in.ValueAddedTax) {
			return nil, domain.ErrInvalidInput
		}
		menu.ValueAddedTax = *in.ValueAddedTax
	}
	if in.Serving != nil {
		menu.Serving = *in.Serving
	}
	if in.Description != nil {
		menu.Description = *in.Description
	}
	menu.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// Delete borra el menú con su receta y su historial de precios.
func (uc *MenuUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func isFraction(v decimal.Decimal) bool {
	return !v.IsNegative() && v.LessThanOrEqual(one)
}
