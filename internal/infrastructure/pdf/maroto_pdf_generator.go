// Package pdf genera el informe de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título              │  Fecha + usuario             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos activos / unidades / low stock          │
//	│  ACTIVIDAD: movimientos por tipo + top movers               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Stock | Mín | Estado   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, report *analytics.StockReport) ([]byte, error) {
	if report == nil || report.Stats == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(report.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Stats.Inventory))
	m.AddRows(activityRow(report.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(report.Products)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(len(report.Products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *analytics.StockReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe de stock", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(report.GeneratedAt.Format("2006-01-02 15:04 MST"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generado por: "+nonEmpty(report.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow: tres cifras del inventario activo.
func summaryRow(inv dto.InventoryStats) core.Row {
	box := func(label, value string, color *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: color, Top: 6}),
		)
	}
	lowColor := colorPrimary
	if inv.LowStockCount > 0 {
		lowColor = colorAlert
	}
	return row.New(16).Add(
		box("Productos activos", formatInt(inv.TotalProducts), colorPrimary),
		box("Unidades en stock", formatInt(inv.TotalQuantity), colorPrimary),
		box("Low stock", formatInt(inv.LowStockCount), lowColor),
	)
}

// activityRow: conteo por tipo (izq) y top movers (der).
func activityRow(s *dto.StatsResponse) core.Row {
	types := make([]string, 0, len(s.Activity.ByType))
	for op := range s.Activity.ByType {
		types = append(types, op)
	}
	sort.Strings(types)
	byType := make([]string, 0, len(types))
	for _, op := range types {
		byType = append(byType, fmt.Sprintf("%s: %d", op, s.Activity.ByType[op]))
	}

	movers := make([]string, 0, len(s.TopMovers))
	for i, mv := range s.TopMovers {
		movers = append(movers, fmt.Sprintf("%d. %s (%d)", i+1, mv.ProductName, mv.Count))
	}

	return row.New(20).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("ACTIVIDAD DESDE %s: %d MOVIMIENTOS", s.Since.Format("2006-01-02"), s.Activity.TotalMovements), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(strings.Join(byType, "   |   "), "Sin movimientos"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("TOP MOVERS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(strings.Join(movers, "\n"), "-"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// productRows: una fila por producto; los low stock van en rojo.
func productRows(products []*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		status, color := "OK", colorGray
		if p.IsLowStock() {
			status, color = "LOW STOCK", colorAlert
		}
		category := "-"
		if p.Category != nil && *p.Category != "" {
			category = *p.Category
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(category, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(formatInt(p.Quantity)+" "+p.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatInt(p.MinQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(status, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: color})),
		))
	}
	return result
}

func footerRow(n int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos activos listados.", n), props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatInt inserta puntos de miles.
// Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatInt(v int) string {
	s := strconv.Itoa(v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
