package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// StockChangeRepository define el puerto del ledger de stock (solo se agrega).
// Delete existe únicamente como primitiva de compensación de lotes fallidos.
type StockChangeRepository interface {
	Create(ctx context.Context, record *entity.StockChangeRecord) error
	GetByID(ctx context.Context, id string) (*entity.StockChangeRecord, error)
	Delete(ctx context.Context, id string) error
	// LatestCheckpoint devuelve el registro más reciente con ManualReport no nulo.
	LatestCheckpoint(ctx context.Context, inventoryItemID string) (*entity.StockChangeRecord, error)
	// ListByItem lista registros del insumo con Date en [from, to], más recientes primero.
	ListByItem(ctx context.Context, inventoryItemID string, from, to *time.Time) ([]*entity.StockChangeRecord, error)
	ListByForeignID(ctx context.Context, foreignID string) ([]*entity.StockChangeRecord, error)
}
