package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, Key("café latte"), Key("  CAFÉ   Latte "))
	assert.Equal(t, "café latte", Key("  Café\tLatte"))
}

func TestKey_UnificaFormasUnicode(t *testing.T) {
	// "é" precompuesta vs "e" + acento combinante
	assert.True(t, Equal("Caf\u00e9", "Cafe\u0301"))
}

func TestClean_ConservaMayusculas(t *testing.T) {
	assert.Equal(t, "Leche Entera", Clean("  Leche   Entera "))
}
