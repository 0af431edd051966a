// Package pdf genera la hoja de precios de la carta.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del café        │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Menú | Tamaño | C. directo | C. indirecto/u |       │
//	│         Pronóstico | Margen | Sugerido | Vigente | IVA      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de precios sin datos                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 58, Blue: 33}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const notEnoughData = "Sin datos"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa cafe.PriceSheetRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderPriceSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderPriceSheet(_ context.Context, title string, generatedAt time.Time, rows []cafe.PriceSheetRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de precios", true).
		WithAuthor(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Hoja de precios de la carta", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Menú", 3, align.Left),
		h("Tamaño", 1, align.Center),
		h("C. directo", 1, align.Right),
		h("C. indirecto/u", 1, align.Right),
		h("Pronóstico", 1, align.Right),
		h("Margen", 1, align.Right),
		h("Sugerido", 1, align.Right),
		h("Vigente", 1, align.Right),
		h("IVA", 1, align.Right),
		h("Registro", 1, align.Left),
	)
}

func tableRows(rows []cafe.PriceSheetRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	for _, r := range rows {
		direct, indirect, forecast, margin, category := "-", "-", "-", "-", notEnoughData
		suggested := notEnoughData
		if r.Menu.SuggestedPrice != nil {
			suggested = "$" + formatMoney(*r.Menu.SuggestedPrice)
		}
		if e := r.Estimate; e != nil {
			direct = "$" + formatMoney(e.DirectCost)
			forecast = fmt.Sprintf("%d", e.SalesForecast)
			margin = e.ProfitMargin.Shift(2).StringFixed(0) + "%"
			category = e.Category
			if e.SalesForecast > 0 {
				indirect = "$" + formatMoney(e.EstimatedIndirectCosts.Div(decimal.NewFromInt(e.SalesForecast)))
			}
		}
		result = append(result, row.New(7).Add(
			cell(r.Menu.Name, 3, align.Left),
			cell(nonEmpty(r.Menu.Size, "-"), 1, align.Center),
			cell(direct, 1, align.Right),
			cell(indirect, 1, align.Right),
			cell(forecast, 1, align.Right),
			cell(margin, 1, align.Right),
			cell(suggested, 1, align.Right),
			cell("$"+formatMoney(r.Menu.CurrentPrice), 1, align.Right),
			cell(r.Menu.ValueAddedTax.Shift(2).StringFixed(0)+"%", 1, align.Right),
			cell(category, 1, align.Left),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"\""+notEnoughData+"\": el menú aún no tiene pronóstico de ventas o su margen es negativo. "+
				"El costo indirecto por unidad es el pozo del período dividido por el pronóstico.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a 2 decimales e inserta puntos de miles en la parte entera.
// Ej: 25000 → "25.000,00", 4.5 → "4,50"
func formatMoney(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
