package repository

import (
	"context"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// PriceEstimateRepository define el puerto de los registros versionados de precio estimado.
// Orden cronológico: FromDate y luego CreatedAt, más recientes primero.
type PriceEstimateRepository interface {
	Create(ctx context.Context, record *entity.EstimatedMenuPriceRecord) error
	Latest(ctx context.Context, menuID string) (*entity.EstimatedMenuPriceRecord, error)
	// LatestAny devuelve el registro más reciente de cualquier menú.
	LatestAny(ctx context.Context) (*entity.EstimatedMenuPriceRecord, error)
	ListByMenu(ctx context.Context, menuID string, limit int) ([]*entity.EstimatedMenuPriceRecord, error)
	CountByMenu(ctx context.Context, menuID string) (int, error)
}
