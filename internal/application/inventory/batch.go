package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

// ledgerBatch agrega registros al ledger uno a uno y recuerda los confirmados.
// Si un paso falla, compensate borra los confirmados en orden inverso.
type ledgerBatch struct {
	repo      repository.StockChangeRepository
	log       *logger.Logger
	committed []string
}

func newLedgerBatch(repo repository.StockChangeRepository, log *logger.Logger) *ledgerBatch {
	return &ledgerBatch{repo: repo, log: log}
}

func (b *ledgerBatch) append(ctx context.Context, rec *entity.StockChangeRecord) error {
	if err := b.repo.Create(ctx, rec); err != nil {
		return err
	}
	b.committed = append(b.committed, rec.ID)
	return nil
}

// compensate intenta borrar todo lo confirmado aunque algún borrado falle.
func (b *ledgerBatch) compensate(ctx context.Context) error {
	var errs []error
	for i := len(b.committed) - 1; i >= 0; i-- {
		id := b.committed[i]
		if err := b.repo.Delete(ctx, id); err != nil {
			b.log.Error().Err(err).Str("stock_change_id", id).Msg("compensación de lote: no se pudo borrar el registro")
			errs = append(errs, fmt.Errorf("borrar %s: %w", id, err))
		}
	}
	b.committed = nil
	return errors.Join(errs...)
}

// run agrega todos los registros. Ante el primer fallo compensa y devuelve
// domain.ErrBatchFailed unido a la causa y a los errores de compensación.
func (b *ledgerBatch) run(ctx context.Context, records []*entity.StockChangeRecord) ([]string, error) {
	for _, rec := range records {
		if err := b.append(ctx, rec); err != nil {
			b.log.Warn().Err(err).
				Str("inventory_item_id", rec.InventoryItemID).
				Int("committed", len(b.committed)).
				Msg("lote de movimientos fallido, compensando")
			// la compensación no debe depender de un ctx ya cancelado
			cerr := b.compensate(context.WithoutCancel(ctx))
			return nil, errors.Join(domain.ErrBatchFailed, err, cerr)
		}
	}
	ids := append([]string(nil), b.committed...)
	return ids, nil
}
