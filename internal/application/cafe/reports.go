package cafe

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// PriceSheetRow fila de la hoja de precios de la carta.
type PriceSheetRow struct {
	Menu     *entity.Menu
	Estimate *entity.EstimatedMenuPriceRecord // nil si el menú nunca se costeó
}

// PriceSheetRenderer genera la hoja de precios de la carta (PDF).
type PriceSheetRenderer interface {
	RenderPriceSheet(ctx context.Context, title string, generatedAt time.Time, rows []PriceSheetRow) ([]byte, error)
}

// PriceHistoryExporter exporta el historial de precios de un menú (planilla).
type PriceHistoryExporter interface {
	ExportPriceHistory(ctx context.Context, menuName string, records []*entity.EstimatedMenuPriceRecord) ([]byte, error)
}

// Reports documentos descargables del back-office.
type Reports struct {
	svc      *Service
	sheet    PriceSheetRenderer
	exporter PriceHistoryExporter
	title    string
	now      func() time.Time
}

// NewReports construye el generador de reportes sobre la fachada.
func NewReports(svc *Service, sheet PriceSheetRenderer, exporter PriceHistoryExporter, title string) *Reports {
	return &Reports{svc: svc, sheet: sheet, exporter: exporter, title: title, now: time.Now}
}

// PriceSheet carta completa con el último registro de precio de cada menú.
func (s *Service) PriceSheet(ctx context.Context) ([]PriceSheetRow, error) {
	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]PriceSheetRow, 0, len(menus))
	for _, m := range menus {
		est, err := s.costing.LatestEstimate(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, PriceSheetRow{Menu: m, Estimate: est})
	}
	return rows, nil
}

// MenuPriceSheetPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (r *Reports) MenuPriceSheetPDF(ctx context.Context) ([]byte, string, error) {
	rows, err := r.svc.PriceSheet(ctx)
	if err != nil {
		return nil, "", err
	}
	now := r.now()
	doc, err := r.sheet.RenderPriceSheet(ctx, r.title, now, rows)
	if err != nil {
		return nil, "", fmt.Errorf("hoja de precios: %w", err)
	}
	return doc, fmt.Sprintf("carta-%s.pdf", now.Format("20060102")), nil
}

// PriceHistoryXLSX devuelve la planilla del historial de precios del menú.
func (r *Reports) PriceHistoryXLSX(ctx context.Context, menuID string) ([]byte, string, error) {
	menu, err := r.svc.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, "", err
	}
	records, err := r.svc.PriceHistory(ctx, menuID, 0)
	if err != nil {
		return nil, "", err
	}
	name := menu.Name
	if menu.Size != "" {
		name += " " + menu.Size
	}
	doc, err := r.exporter.ExportPriceHistory(ctx, name, records)
	if err != nil {
		return nil, "", fmt.Errorf("historial de precios: %w", err)
	}
	return doc, fmt.Sprintf("precios-%s.xlsx", menu.ID), nil
}
