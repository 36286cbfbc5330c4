package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del portafolio más la tabla de salud por cliente.
type DashboardSummaryDTO struct {
	TotalCustomers  int             `json:"total_customers"`
	ForecastRevenue decimal.Decimal `json:"forecast_revenue"`
	ActualRevenue   decimal.Decimal `json:"actual_revenue"`
	AtRisk          int             `json:"at_risk"`         // rojo
	NeedsAttention  int             `json:"needs_attention"` // rojo o amarillo

	// Montos ya formateados (miles daneses) para las tarjetas.
	ForecastRevenueLabel string `json:"forecast_revenue_label"`
	ActualRevenueLabel   string `json:"actual_revenue_label"`

	Portfolio []PortfolioRowDTO `json:"portfolio"`
	Degraded  bool              `json:"degraded"`
	AsOf      string            `json:"as_of"` // YYYY-MM-DD
}

// PortfolioRowDTO fila de la tabla de portafolio.
type PortfolioRowDTO struct {
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Health        string          `json:"health"`
	Forecast      decimal.Decimal `json:"forecast"`
	Actual        decimal.Decimal `json:"actual"`
	ForecastLabel string          `json:"forecast_label"`
	ActualLabel   string          `json:"actual_label"`
}
