// seed_menu genera un script SQL para poblar insumos, carta y recetas a partir de un CSV
// separado por ';'. Acepta archivos UTF-8 o ISO-8859-1 (exportados desde Excel).
//
// Uso: go run ./cmd/seed_menu [ruta/carta.csv] [salida.sql]
//
// Formato de filas (la primera columna indica el tipo):
//
//	insumo;<nombre>;<unidad>;<precio_por_unidad>;<categoría>
//	menu;<nombre>;<tamaño>;<precio>;<iva>
//	receta;<menú>;<tamaño>;<insumo>;<cantidad>
//
// Las líneas vacías o que empiezan con '#' se ignoran.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Cafeteria-api/pkg/textnorm"
)

type seedItem struct {
	name, unit, category string
	pricePerUnit         decimal.Decimal
}

type seedMenu struct {
	name, size string
	price, vat decimal.Decimal
}

type seedRecipe struct {
	menu, size, item string
	amount           decimal.Decimal
}

func main() {
	csvPath := "carta.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "seed_menu.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	items, menus, recipes, err := parse(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, items, menus, recipes); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d insumos, %d menús, %d líneas de receta\n", outPath, len(items), len(menus), len(recipes))
}

// decodeInput devuelve un lector UTF-8; si el archivo no es UTF-8 válido se asume ISO-8859-1.
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parse(r io.Reader) ([]seedItem, []seedMenu, []seedRecipe, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		items   []seedItem
		menus   []seedMenu
		recipes []seedRecipe
	)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 5 {
			return nil, nil, nil, fmt.Errorf("línea %d: se esperaban 5 columnas, hay %d", line, len(rec))
		}
		for i := range rec {
			rec[i] = textnorm.Clean(rec[i])
		}
		switch strings.ToLower(rec[0]) {
		case "insumo":
			ppu, err := number(rec[3])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("línea %d: precio por unidad: %w", line, err)
			}
			items = append(items, seedItem{name: rec[1], unit: rec[2], pricePerUnit: ppu, category: rec[4]})
		case "menu", "menú":
			price, err := number(rec[3])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("línea %d: precio: %w", line, err)
			}
			vat, err := number(rec[4])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("línea %d: iva: %w", line, err)
			}
			menus = append(menus, seedMenu{name: rec[1], size: rec[2], price: price, vat: vat})
		case "receta":
			amount, err := number(rec[4])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("línea %d: cantidad: %w", line, err)
			}
			recipes = append(recipes, seedRecipe{menu: rec[1], size: rec[2], item: rec[3], amount: amount})
		default:
			return nil, nil, nil, fmt.Errorf("línea %d: tipo desconocido %q", line, rec[0])
		}
	}
	return items, menus, recipes, nil
}

// number acepta coma o punto decimal ("0,004" o "0.004").
func number(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func writeSQL(w io.Writer, items []seedItem, menus []seedMenu, recipes []seedRecipe) error {
	var b strings.Builder
	b.WriteString("-- Carta inicial del café\n-- Generado por cmd/seed_menu\n\nBEGIN;\n\n")

	b.WriteString("-- 1. Insumos\n")
	for _, it := range items {
		fmt.Fprintf(&b, "INSERT INTO inventory_items (id, name, name_key, unit, category, price_per_unit)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', %s)\n",
			uuid.New(), escapeSQL(it.name), escapeSQL(textnorm.Key(it.name)), escapeSQL(it.unit), escapeSQL(it.category), it.pricePerUnit)
		b.WriteString("ON CONFLICT (name_key) DO UPDATE SET price_per_unit = EXCLUDED.price_per_unit;\n")
	}

	b.WriteString("\n-- 2. Carta\n")
	for _, m := range menus {
		fmt.Fprintf(&b, "INSERT INTO menus (id, name, size, name_key, size_key, current_price, value_added_tax)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', %s, %s)\n",
			uuid.New(), escapeSQL(m.name), escapeSQL(m.size), escapeSQL(textnorm.Key(m.name)), escapeSQL(textnorm.Key(m.size)), m.price, m.vat)
		b.WriteString("ON CONFLICT (name_key, size_key) DO NOTHING;\n")
	}

	b.WriteString("\n-- 3. Recetas\n")
	for _, r := range recipes {
		fmt.Fprintf(&b, "INSERT INTO recipes (menu_id, inventory_item_id, amount_usage, writer)\n")
		fmt.Fprintf(&b, "SELECT m.id, i.id, %s, 'seed_menu' FROM menus m, inventory_items i\n", r.amount)
		fmt.Fprintf(&b, "WHERE m.name_key = '%s' AND m.size_key = '%s' AND i.name_key = '%s'\n",
			escapeSQL(textnorm.Key(r.menu)), escapeSQL(textnorm.Key(r.size)), escapeSQL(textnorm.Key(r.item)))
		b.WriteString("ON CONFLICT (menu_id, inventory_item_id) DO UPDATE SET amount_usage = EXCLUDED.amount_usage;\n")
	}

	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
