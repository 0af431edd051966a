package inventory

import (
	"context"

	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el recálculo de stock (leer ledger + escribir caché) sea atómico con el bloqueo de la fila.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		ledgerRepo repository.StockChangeRepository,
	) error) error
}

// Locker serializa las operaciones que afectan el stock de un mismo insumo.
// Lock adquiere todas las llaves (en orden estable) o ninguna; release libera todas.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (release func(), err error)
}

// LockKey llave de bloqueo de un insumo.
func LockKey(inventoryItemID string) string {
	return "inventory-item:" + inventoryItemID
}
