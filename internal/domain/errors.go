package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBatchFailed       = errors.New("lote de movimientos fallido")
	ErrNothingToReport   = errors.New("no hay datos para reportar")
	ErrLockNotObtained   = errors.New("no se pudo obtener el bloqueo")
)

// InsufficientStockError detalla el faltante por insumo (nombre → cantidad faltante).
type InsufficientStockError struct {
	Missing map[string]decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for n := range e.Missing {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s: faltan %s", n, e.Missing[n].String()))
	}
	return fmt.Sprintf("%s (%s)", ErrInsufficientStock.Error(), strings.Join(parts, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
