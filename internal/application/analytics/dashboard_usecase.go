// Package analytics contiene los casos de uso de la vista general del portafolio:
// KPIs, tabla de salud por cliente y su reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cs-portfolio/internal/application/customers"
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/domain/portfolio"
)

// PortfolioPDFGenerator genera el reporte PDF a partir del resumen ya calculado.
type PortfolioPDFGenerator interface {
	GeneratePortfolioPDF(ctx context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error)
}

// DashboardUseCase calcula el resumen del portafolio sobre el caché del gestor.
// No lee la hoja directamente: todo pasa por customers.Manager.
type DashboardUseCase struct {
	manager *customers.Manager
	pdf     PortfolioPDFGenerator
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. pdf puede ser nil si no se expone el reporte.
func NewDashboardUseCase(manager *customers.Manager, pdf PortfolioPDFGenerator) *DashboardUseCase {
	return &DashboardUseCase{manager: manager, pdf: pdf, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
// Con la hoja caída devuelve KPIs en cero y Degraded=true en lugar de fallar.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	view := uc.manager.Snapshot(ctx)
	return BuildSummary(view.Customers, entity.NewDate(uc.now()), view.Degraded), nil
}

// ExportPDF genera el reporte del portafolio y el nombre de archivo sugerido.
func (uc *DashboardUseCase) ExportPDF(ctx context.Context) (data []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	summary, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	if summary.Degraded {
		return nil, "", domain.ErrBackendUnavailable
	}
	data, err = uc.pdf.GeneratePortfolioPDF(ctx, summary)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return data, fmt.Sprintf("portfolio_%s.pdf", uc.now().Format("20060102")), nil
}

// BuildSummary agrega KPIs y arma la tabla del portafolio ordenada por nombre.
func BuildSummary(list []*entity.Customer, today entity.Date, degraded bool) *dto.DashboardSummaryDTO {
	s := portfolio.Summarize(list, today)
	out := &dto.DashboardSummaryDTO{
		TotalCustomers:       s.TotalCustomers,
		ForecastRevenue:      s.ForecastRevenue,
		ActualRevenue:        s.ActualRevenue,
		AtRisk:               s.AtRisk,
		NeedsAttention:       s.NeedsAttention,
		ForecastRevenueLabel: portfolio.FormatAmount(s.ForecastRevenue),
		ActualRevenueLabel:   portfolio.FormatAmount(s.ActualRevenue),
		Portfolio:            make([]dto.PortfolioRowDTO, 0, len(list)),
		Degraded:             degraded,
		AsOf:                 today.String(),
	}
	for _, c := range portfolio.Sort(list, portfolio.SortByName) {
		out.Portfolio = append(out.Portfolio, dto.PortfolioRowDTO{
			CustomerID:    c.ID,
			CustomerName:  c.Name,
			Health:        string(portfolio.HealthOf(c, today)),
			Forecast:      c.ForecastYearlyRevenue,
			Actual:        c.ActualRevenueToDate,
			ForecastLabel: portfolio.FormatAmount(c.ForecastYearlyRevenue),
			ActualLabel:   portfolio.FormatAmount(c.ActualRevenueToDate),
		})
	}
	return out
}
