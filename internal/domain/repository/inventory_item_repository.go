package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Las lecturas devuelven (nil, nil) cuando el registro no existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetByName busca por nombre normalizado (textnorm.Key).
	GetByName(ctx context.Context, name string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	// Update modifica atributos; no toca CurrentStock (se maneja vía ledger).
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateCurrentStock(ctx context.Context, id string, stock decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
