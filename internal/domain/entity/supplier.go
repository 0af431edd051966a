package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de insumos. LoadTimeHours es el tiempo de entrega usado en alertas de stock bajo.
type Supplier struct {
	ID            string
	Name          string
	Contact       string
	LoadTimeHours decimal.Decimal
	CreatedAt     time.Time
}
