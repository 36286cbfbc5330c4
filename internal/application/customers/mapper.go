package customers

import (
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/domain/portfolio"
)

// ToResponse arma la salida HTTP de un cliente con su salud a la fecha indicada.
func ToResponse(c *entity.Customer, today entity.Date) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		CVR:                   c.CVR,
		CommercialContact:     c.CommercialContact,
		AdminContact:          c.AdminContact,
		ForecastYearlyRevenue: c.ForecastYearlyRevenue,
		ActualRevenueToDate:   c.ActualRevenueToDate,
		AccountCreatedDate:    c.AccountCreatedDate,
		FirstTripDate:         c.FirstTripDate,
		UpdatedAt:             c.UpdatedAt,
		Health:                string(portfolio.HealthOf(c, today)),
		Subtitle:              portfolio.RevenueSubtitle(c.ForecastYearlyRevenue, c.ActualRevenueToDate),
	}
}

// ToListResponse arma la respuesta de listado a partir de una vista.
func ToListResponse(v *View, query string, today entity.Date) dto.CustomerListResponse {
	items := make([]dto.CustomerResponse, 0, len(v.Customers))
	for _, c := range v.Customers {
		items = append(items, ToResponse(c, today))
	}
	return dto.CustomerListResponse{
		Items:    items,
		Total:    len(items),
		Query:    query,
		Sort:     string(v.Sort),
		Degraded: v.Degraded,
	}
}
