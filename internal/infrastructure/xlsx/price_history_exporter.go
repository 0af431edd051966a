// Package xlsx exporta reportes del back-office como planillas Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

const sheetName = "Precios"

var headers = []interface{}{
	"Fecha", "Categoría", "Costo directo", "Costos indirectos", "Pronóstico de ventas",
	"Margen", "Precio manual", "Precio sugerido", "Descripción",
}

// PriceHistoryExporter implementa cafe.PriceHistoryExporter con excelize.
type PriceHistoryExporter struct{}

// NewPriceHistoryExporter construye el exportador.
func NewPriceHistoryExporter() *PriceHistoryExporter { return &PriceHistoryExporter{} }

// ExportPriceHistory una fila por registro de precio, en el orden recibido.
func (e *PriceHistoryExporter) ExportPriceHistory(_ context.Context, menuName string, records []*entity.EstimatedMenuPriceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", "Historial de precios: "+menuName); err != nil {
		return nil, fmt.Errorf("xlsx: título: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A3", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "I3", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		suggested := "Sin datos suficientes"
		if r.EstimatedPrice != nil {
			suggested = r.EstimatedPrice.StringFixed(2)
		}
		values := []interface{}{
			r.FromDate.Format("2006-01-02 15:04"),
			r.Category,
			r.DirectCost.InexactFloat64(),
			r.EstimatedIndirectCosts.InexactFloat64(),
			r.SalesForecast,
			r.ProfitMargin.InexactFloat64(),
			r.ManualPrice.InexactFloat64(),
			suggested,
			r.Description,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "I", 18); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columnas: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
