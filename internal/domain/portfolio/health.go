package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// Health semáforo de salud de un cliente.
type Health string

const (
	HealthGreen  Health = "Green"
	HealthYellow Health = "Yellow"
	HealthRed    Health = "Red"
)

var (
	greenThreshold  = decimal.RequireFromString("0.9")
	yellowThreshold = decimal.RequireFromString("0.6")
	daysPerYear     = decimal.NewFromInt(365)
)

// HealthOf compara el ingreso real con el esperado a la fecha.
// Esperado = Forecast * min(1, días desde FirstTripDate / 365).
// Ratio real/esperado: >= 0.9 verde, >= 0.6 amarillo, resto rojo.
// Sin primer viaje, viaje en el futuro o forecast cero: verde.
func HealthOf(c *entity.Customer, today entity.Date) Health {
	if c == nil || c.FirstTripDate.IsZero() || !c.ForecastYearlyRevenue.IsPositive() {
		return HealthGreen
	}
	days := int64(today.Time().Sub(c.FirstTripDate.Time()).Hours() / 24)
	if days <= 0 {
		return HealthGreen
	}
	expected := c.ForecastYearlyRevenue
	if days < 365 {
		expected = expected.Mul(decimal.NewFromInt(days)).Div(daysPerYear)
	}
	if !expected.IsPositive() {
		return HealthGreen
	}
	ratio := c.ActualRevenueToDate.Div(expected)
	switch {
	case ratio.GreaterThanOrEqual(greenThreshold):
		return HealthGreen
	case ratio.GreaterThanOrEqual(yellowThreshold):
		return HealthYellow
	default:
		return HealthRed
	}
}

// Summary agregados del portafolio para la vista general.
type Summary struct {
	TotalCustomers  int
	ForecastRevenue decimal.Decimal
	ActualRevenue   decimal.Decimal
	AtRisk          int // rojo
	NeedsAttention  int // rojo o amarillo
}

// Summarize calcula los agregados sobre el conjunto completo.
func Summarize(customers []*entity.Customer, today entity.Date) Summary {
	s := Summary{ForecastRevenue: decimal.Zero, ActualRevenue: decimal.Zero}
	for _, c := range customers {
		if c == nil {
			continue
		}
		s.TotalCustomers++
		s.ForecastRevenue = s.ForecastRevenue.Add(c.ForecastYearlyRevenue)
		s.ActualRevenue = s.ActualRevenue.Add(c.ActualRevenueToDate)
		switch HealthOf(c, today) {
		case HealthRed:
			s.AtRisk++
			s.NeedsAttention++
		case HealthYellow:
			s.NeedsAttention++
		}
	}
	return s
}
