package dto

import "github.com/shopspring/decimal"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP. Fields detalla errores de validación por campo.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// InsufficientStockResponse cuerpo del 409 por falta de stock: insumo → cantidad faltante.
type InsufficientStockResponse struct {
	Code    string                     `json:"code"`
	Message string                     `json:"message"`
	Missing map[string]decimal.Decimal `json:"missing"`
}

// RecalcResponse resultado de un recálculo de precios disparado por un cambio.
// Note explica por qué no se registró nada.
type RecalcResponse struct {
	Repriced int    `json:"repriced"`
	Note     string `json:"note,omitempty"`
}
