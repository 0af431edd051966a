package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = `# tipo;nombre;...
insumo;Café en grano;g;0,05;Café
insumo;Leche;ml;0.004;Lácteos
menu;Latte;M;8500;0.19
receta;Latte;M;Café en grano;18
receta;latte;m;LECHE;200
`

func TestParse_UTF8(t *testing.T) {
	items, menus, recipes, err := parse(decodeInput([]byte(sample)))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Café en grano", items[0].name)
	assert.Equal(t, "0.05", items[0].pricePerUnit.String())
	require.Len(t, menus, 1)
	assert.Equal(t, "0.19", menus[0].vat.String())
	require.Len(t, recipes, 2)
	assert.Equal(t, "200", recipes[1].amount.String())
}

func TestParse_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(sample)
	require.NoError(t, err)

	items, _, _, err := parse(decodeInput([]byte(latin1)))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Café en grano", items[0].name, "ISO-8859-1 debe decodificarse a UTF-8")
	assert.Equal(t, "Lácteos", items[1].category)
}

func TestParse_TipoDesconocido(t *testing.T) {
	_, _, _, err := parse(strings.NewReader("bebida;Té;M;1;0\n"))
	assert.Error(t, err)
}

func TestWriteSQL_RecetaUsaClavesNormalizadas(t *testing.T) {
	items, menus, recipes, err := parse(decodeInput([]byte(sample)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, items, menus, recipes))
	sql := buf.String()

	assert.Contains(t, sql, "BEGIN;")
	assert.Contains(t, sql, "i.name_key = 'leche'")
	assert.Contains(t, sql, "m.name_key = 'latte' AND m.size_key = 'm'")
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO inventory_items"))
}
