// Package pdf implementa el reporte PDF del portafolio de Customer Success.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de corte                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Clientes | Forecast | Actual | At-risk | Attention    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | Salud | Forecast | Actual                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/cs-portfolio/internal/application/analytics"
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 30, Green: 130, Blue: 60}
	colorYellow  = &props.Color{Red: 200, Green: 140, Blue: 0}
	colorRed     = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.PortfolioPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.PortfolioPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador. title vacío usa "Customer Portfolio".
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Customer Portfolio"
	}
	return &MarotoPDFGenerator{title: title}
}

// GeneratePortfolioPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePortfolioPDF(_ context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, summary.AsOf))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(summary.Portfolio)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, asOf string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Pr. "+asOf, props.Text{
				Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// kpiRow: las cinco tarjetas de la vista general.
func kpiRow(s *dto.DashboardSummaryDTO) core.Row {
	kpi := func(size int, label, value string) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 7, Align: align.Center}),
		)
	}
	return row.New(18).Add(
		kpi(2, "Customers", strconv.Itoa(s.TotalCustomers)),
		kpi(3, "Forecast revenue", s.ForecastRevenueLabel),
		kpi(3, "Actual revenue", s.ActualRevenueLabel),
		kpi(2, "At-risk", strconv.Itoa(s.AtRisk)),
		kpi(2, "Needs attention", strconv.Itoa(s.NeedsAttention)),
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
		h("Customer", 5, align.Left),
		h("Health", 2, align.Center),
		h("Forecast", 2, align.Right),
		h("Actual", 3, align.Right),
	)
}

func tableRows(rows []dto.PortfolioRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(r.CustomerName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Health, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: healthColor(r.Health),
			})),
			col.New(2).Add(text.New(r.ForecastLabel, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(r.ActualLabel, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func healthColor(h string) *props.Color {
	switch h {
	case "Red":
		return colorRed
	case "Yellow":
		return colorYellow
	default:
		return colorGreen
	}
}
