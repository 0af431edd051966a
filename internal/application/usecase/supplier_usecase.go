package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/textnorm"
)

// SupplierUseCase casos de uso para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	name := textnorm.Clean(in.Name)
	if name == "" || in.LoadTimeHours.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	sup := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          name,
		Contact:       in.Contact,
		LoadTimeHours: in.LoadTimeHours,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// List lista proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.repo.List(ctx)
}
