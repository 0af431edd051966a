package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu representa un producto de la carta. (Name, Size) es único con comparación normalizada.
// CurrentPrice y SuggestedPrice solo los escribe el motor de costeo.
type Menu struct {
	ID             string
	Name           string
	Size           string
	Category       string
	CurrentPrice   decimal.Decimal  // precio de venta vigente (espejo del precio manual resuelto)
	SuggestedPrice *decimal.Decimal // última sugerencia calculable; nil si nunca hubo datos suficientes
	ValueAddedTax  decimal.Decimal  // fracción en [0,1]
	Serving        bool
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
