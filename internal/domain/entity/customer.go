package entity

import (
	"github.com/shopspring/decimal"
)

// UpdatedAtLayout formato ISO-8601 (UTC, segundos) con el que se estampa UpdatedAt.
const UpdatedAtLayout = "2006-01-02T15:04:05Z"

// Customer representa una fila de la hoja "Customers" del portafolio de Customer Success.
type Customer struct {
	ID                    string // estable, se genera una sola vez
	Name                  string
	CVR                   string // número de registro (opcional)
	CommercialContact     string
	AdminContact          string
	ForecastYearlyRevenue decimal.Decimal
	ActualRevenueToDate   decimal.Decimal
	AccountCreatedDate    Date
	FirstTripDate         Date
	UpdatedAt             string
}

// Clone devuelve una copia independiente del registro.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Equal compara todos los campos, incluidos los montos por valor decimal.
func (c *Customer) Equal(o *Customer) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ID == o.ID &&
		c.Name == o.Name &&
		c.CVR == o.CVR &&
		c.CommercialContact == o.CommercialContact &&
		c.AdminContact == o.AdminContact &&
		c.ForecastYearlyRevenue.Equal(o.ForecastYearlyRevenue) &&
		c.ActualRevenueToDate.Equal(o.ActualRevenueToDate) &&
		c.AccountCreatedDate == o.AccountCreatedDate &&
		c.FirstTripDate == o.FirstTripDate &&
		c.UpdatedAt == o.UpdatedAt
}

// CloneCustomers copia profunda de un conjunto de registros.
func CloneCustomers(in []*Customer) []*Customer {
	out := make([]*Customer, 0, len(in))
	for _, c := range in {
		out = append(out, c.Clone())
	}
	return out
}
