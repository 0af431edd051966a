// Package textnorm normaliza nombres de catálogo (insumos, menú) para las reglas de unicidad:
// forma NFC, plegado de mayúsculas/minúsculas y espacios colapsados.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Key devuelve la clave de comparación de un nombre. "  Café  Latte " y "café latte" comparten clave.
func Key(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}

// Clean colapsa espacios y normaliza a NFC conservando mayúsculas (valor a persistir).
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Equal compara dos nombres por su clave normalizada.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
