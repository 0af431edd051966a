package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// MenuRepository define el puerto de persistencia para Menu (DIP).
type MenuRepository interface {
	Create(ctx context.Context, menu *entity.Menu) error
	GetByID(ctx context.Context, id string) (*entity.Menu, error)
	// GetByNameAndSize busca por nombre y tamaño normalizados.
	GetByNameAndSize(ctx context.Context, name, size string) (*entity.Menu, error)
	List(ctx context.Context) ([]*entity.Menu, error)
	// Update modifica atributos de catálogo; los precios solo cambian vía UpdatePrices.
	Update(ctx context.Context, menu *entity.Menu) error
	// UpdatePrices escribe el caché de precios. suggested nil conserva el valor anterior.
	UpdatePrices(ctx context.Context, id string, current decimal.Decimal, suggested *decimal.Decimal) error
	// Delete borra el menú junto con su receta y su historial de precios.
	Delete(ctx context.Context, id string) error
}
