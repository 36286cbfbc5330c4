package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cs-portfolio/internal/application/analytics"
	"github.com/jhoicas/cs-portfolio/internal/application/customers"
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

var today = entity.Date{Year: 2025, Month: time.January, Day: 1}

func portfolioFixture() []*entity.Customer {
	// Primer viaje hace más de un año: esperado = forecast completo.
	trip := entity.Date{Year: 2023, Month: time.June, Day: 1}
	mk := func(id, name string, forecast, actual int64) *entity.Customer {
		return &entity.Customer{
			ID: id, Name: name, CommercialContact: "c", AdminContact: "a",
			ForecastYearlyRevenue: decimal.NewFromInt(forecast),
			ActualRevenueToDate:   decimal.NewFromInt(actual),
			FirstTripDate:         trip,
		}
	}
	return []*entity.Customer{
		mk("3", "Retail X", 10000, 1000),    // rojo
		mk("1", "Acme A/S", 42000, 42000),   // verde
		mk("2", "Nordic ApS", 20000, 14000), // amarillo
	}
}

func TestBuildSummary(t *testing.T) {
	s := analytics.BuildSummary(portfolioFixture(), today, false)

	assert.Equal(t, 3, s.TotalCustomers)
	assert.True(t, decimal.NewFromInt(72000).Equal(s.ForecastRevenue))
	assert.True(t, decimal.NewFromInt(57000).Equal(s.ActualRevenue))
	assert.Equal(t, 1, s.AtRisk)
	assert.Equal(t, 2, s.NeedsAttention)
	assert.Equal(t, "72.000", s.ForecastRevenueLabel)
	assert.Equal(t, "2025-01-01", s.AsOf)

	require.Len(t, s.Portfolio, 3)
	assert.Equal(t, "Acme A/S", s.Portfolio[0].CustomerName)
	assert.Equal(t, "Green", s.Portfolio[0].Health)
	assert.Equal(t, "Yellow", s.Portfolio[1].Health)
	assert.Equal(t, "Red", s.Portfolio[2].Health)
	assert.Equal(t, "42.000", s.Portfolio[0].ForecastLabel)
}

type fakePDF struct{ got *dto.DashboardSummaryDTO }

func (f *fakePDF) GeneratePortfolioPDF(_ context.Context, s *dto.DashboardSummaryDTO) ([]byte, error) {
	f.got = s
	return []byte("%PDF"), nil
}

func newManager(t *testing.T) (*customers.Manager, *sheets.MemoryStore) {
	t.Helper()
	store := sheets.NewMemoryStore()
	require.NoError(t, store.WriteRows(context.Background(), sheets.DefaultWorksheet, sheets.Serialize(portfolioFixture())))
	return customers.NewManager(sheets.NewGateway(store, "", logger.Nop()), logger.Nop()), store
}

func TestDashboardUseCase_GetSummaryYPDF(t *testing.T) {
	m, _ := newManager(t)
	gen := &fakePDF{}
	uc := analytics.NewDashboardUseCase(m, gen)

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalCustomers)
	assert.False(t, s.Degraded)

	data, filename, err := uc.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Regexp(t, `^portfolio_\d{8}\.pdf$`, filename)
	require.NotNil(t, gen.got)
	assert.Equal(t, 3, gen.got.TotalCustomers)
}

func TestDashboardUseCase_HojaCaida(t *testing.T) {
	m, store := newManager(t)
	store.SetReadError(errors.New("down"))
	uc := analytics.NewDashboardUseCase(m, &fakePDF{})

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Degraded)
	assert.Equal(t, 0, s.TotalCustomers)

	_, _, err = uc.ExportPDF(context.Background())
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
