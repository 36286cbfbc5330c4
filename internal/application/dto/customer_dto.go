package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// CustomerInput entrada para alta y edición de un cliente.
// Los textos se recortan antes de validar; las fechas ausentes se completan con hoy.
type CustomerInput struct {
	Name                  string          `json:"customer_name" validate:"required,max=200"`
	CVR                   string          `json:"cvr" validate:"omitempty,max=32"`
	CommercialContact     string          `json:"commercial_contact" validate:"required,max=200"`
	AdminContact          string          `json:"admin_contact" validate:"required,max=200"`
	ForecastYearlyRevenue decimal.Decimal `json:"forecast_yearly_revenue"`
	ActualRevenueToDate   decimal.Decimal `json:"actual_revenue_to_date"`
	AccountCreatedDate    entity.Date     `json:"account_created_date" swaggertype:"string" example:"2024-01-31"`
	FirstTripDate         entity.Date     `json:"first_trip_date" swaggertype:"string" example:"2024-03-01"`
}

// CustomerResponse salida de un cliente, con salud y subtítulo ya formateados.
type CustomerResponse struct {
	ID                    string          `json:"customer_id"`
	Name                  string          `json:"customer_name"`
	CVR                   string          `json:"cvr"`
	CommercialContact     string          `json:"commercial_contact"`
	AdminContact          string          `json:"admin_contact"`
	ForecastYearlyRevenue decimal.Decimal `json:"forecast_yearly_revenue"`
	ActualRevenueToDate   decimal.Decimal `json:"actual_revenue_to_date"`
	AccountCreatedDate    entity.Date     `json:"account_created_date" swaggertype:"string"`
	FirstTripDate         entity.Date     `json:"first_trip_date" swaggertype:"string"`
	UpdatedAt             string          `json:"updated_at"`
	Health                string          `json:"health"`   // Green | Yellow | Red
	Subtitle              string          `json:"subtitle"` // "Forecast: 42.000 | Actual: 9.000"
}

// CustomerListResponse vista filtrada y ordenada de la lista de clientes.
// Degraded indica que la hoja no respondió y la lista está vacía en modo solo lectura.
type CustomerListResponse struct {
	Items    []CustomerResponse `json:"items"`
	Total    int                `json:"total"`
	Query    string             `json:"query,omitempty"`
	Sort     string             `json:"sort"`
	Degraded bool               `json:"degraded"`
}

// EditingResponse estado de la máquina de edición de la sesión.
type EditingResponse struct {
	State    string            `json:"state"` // idle | editing
	Customer *CustomerResponse `json:"customer,omitempty"`
}
