package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/cs-portfolio/internal/application/analytics"
	"github.com/jhoicas/cs-portfolio/internal/application/auth"
	"github.com/jhoicas/cs-portfolio/internal/application/customers"
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/excel"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/pdf"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
	apphttp "github.com/jhoicas/cs-portfolio/internal/interfaces/http"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	store *sheets.MemoryStore
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	store := sheets.NewMemoryStore()
	trip := entity.Date{Year: 2024, Month: time.January, Day: 15}
	seed := []*entity.Customer{
		{ID: "id-retail", Name: "Retail X", CommercialContact: "Mette", AdminContact: "Lars",
			ForecastYearlyRevenue: decimal.NewFromInt(9000), ActualRevenueToDate: decimal.NewFromInt(500), FirstTripDate: trip},
		{ID: "id-acme", Name: "Acme A/S", CVR: "12345678", CommercialContact: "Mette", AdminContact: "Lars",
			ForecastYearlyRevenue: decimal.NewFromInt(42000), ActualRevenueToDate: decimal.NewFromInt(42000), FirstTripDate: trip},
	}
	require.NoError(t, store.WriteRows(ctx, sheets.DefaultWorksheet, sheets.Serialize(seed)))

	log := logger.Nop()
	manager := customers.NewManager(sheets.NewGateway(store, "", log), log)
	authUC, err := auth.NewAuthUseCase(
		auth.Credentials{Username: "cs", Password: "hemmelig"},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		Customers:    manager,
		EditSessions: customers.NewEditSessions(manager),
		ExportUC:     customers.NewExportUseCase(manager, excel.NewExporter("")),
		DashboardUC:  appanalytics.NewDashboardUseCase(manager, pdf.NewMarotoPDFGenerator("")),
		JWTSecret:    testJWTSecret,
	})
	return &apiFixture{app: app, store: store}
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func customerBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":           name,
		"commercial_contact":      "Mette",
		"admin_contact":           "Lars",
		"forecast_yearly_revenue": 10000,
		"actual_revenue_to_date":  0,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenUsable(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "cs", "password": "hemmelig"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)

	resp = f.do(t, http.MethodGet, "/api/customers", "Bearer "+out.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLogin_CredencialIncorrecta_Retorna401(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "cs", "password": "forkert"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "cs"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestCustomers_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/customers", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomers_ListBuscaYOrdena(t *testing.T) {
	f := newAPI(t)
	token := tokenForSession(t, testSessionID)

	var out dto.CustomerListResponse
	decode(t, f.do(t, http.MethodGet, "/api/customers", token, nil), &out)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Acme A/S", out.Items[0].Name)
	assert.Equal(t, "CustomerName", out.Sort)
	assert.Equal(t, "Forecast: 42.000 | Actual: 42.000", out.Items[0].Subtitle)
	assert.False(t, out.Degraded)

	decode(t, f.do(t, http.MethodGet, "/api/customers?q=RETAIL", token, nil), &out)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "id-retail", out.Items[0].ID)

	resp := f.do(t, http.MethodGet, "/api/customers?sort=Color", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomers_CrearEditarEliminar(t *testing.T) {
	f := newAPI(t)
	token := tokenForSession(t, testSessionID)

	resp := f.do(t, http.MethodPost, "/api/customers", token, customerBody("Test Kunde"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CustomerResponse
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.True(t, decimal.NewFromInt(10000).Equal(created.ForecastYearlyRevenue))
	assert.False(t, created.AccountCreatedDate.IsZero(), "fecha ausente se completa con hoy")

	resp = f.do(t, http.MethodPut, "/api/customers/"+created.ID, token, customerBody("Test Kunde ApS"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited dto.CustomerResponse
	decode(t, resp, &edited)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Test Kunde ApS", edited.Name)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/customers/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "borrar un ID ausente no es error")
}

func TestCustomers_ValidacionDevuelveCampos(t *testing.T) {
	f := newAPI(t)
	token := tokenForSession(t, testSessionID)

	body := customerBody("")
	body["admin_contact"] = "  "
	resp := f.do(t, http.MethodPost, "/api/customers", token, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "customer_name")
	assert.Contains(t, out.Fields, "admin_contact")

	body = customerBody("Test Kunde")
	body["first_trip_date"] = "15/03/2024"
	resp = f.do(t, http.MethodPost, "/api/customers", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomers_EditarIDInexistente_Retorna409(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPut, "/api/customers/no-existe", tokenForSession(t, testSessionID), customerBody("X"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCustomers_HojaCaida(t *testing.T) {
	f := newAPI(t)
	token := tokenForSession(t, testSessionID)
	f.store.SetReadError(errors.New("connection refused"))

	var list dto.CustomerListResponse
	decode(t, f.do(t, http.MethodGet, "/api/customers", token, nil), &list)
	assert.True(t, list.Degraded)
	assert.Equal(t, 0, list.Total)

	resp := f.do(t, http.MethodPost, "/api/customers", token, customerBody("Test Kunde"))
	var out dto.ErrorResponse
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "READ_ONLY", out.Code)

	resp = f.do(t, http.MethodPost, "/api/customers/reload", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCustomers_FalloDeEscritura_Retorna502(t *testing.T) {
	f := newAPI(t)
	f.store.SetWriteError(errors.New("quota exceeded"))

	resp := f.do(t, http.MethodPost, "/api/customers", tokenForSession(t, testSessionID), customerBody("Test Kunde"))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "BACKEND_WRITE", out.Code)
	assert.Contains(t, out.Message, "quota exceeded", "el detalle del backend llega al usuario")
}

func TestCustomers_EdicionPorSesion(t *testing.T) {
	f := newAPI(t)
	tokenA := tokenForSession(t, "sesion-a")
	tokenB := tokenForSession(t, "sesion-b")

	var state dto.EditingResponse
	decode(t, f.do(t, http.MethodPost, "/api/customers/editing/id-acme", tokenA, nil), &state)
	assert.Equal(t, "editing", state.State)
	require.NotNil(t, state.Customer)
	assert.Equal(t, "id-acme", state.Customer.ID)

	decode(t, f.do(t, http.MethodGet, "/api/customers/editing", tokenB, nil), &state)
	assert.Equal(t, "idle", state.State, "otra sesión no ve la selección")

	resp := f.do(t, http.MethodPost, "/api/customers/editing", tokenA, customerBody(""))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, f.do(t, http.MethodGet, "/api/customers/editing", tokenA, nil), &state)
	assert.Equal(t, "editing", state.State, "un guardado fallido sigue en edición")

	resp = f.do(t, http.MethodPost, "/api/customers/editing", tokenA, customerBody("Acme Holding A/S"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var saved dto.CustomerResponse
	decode(t, resp, &saved)
	assert.Equal(t, "Acme Holding A/S", saved.Name)

	decode(t, f.do(t, http.MethodGet, "/api/customers/editing", tokenA, nil), &state)
	assert.Equal(t, "idle", state.State)

	resp = f.do(t, http.MethodPost, "/api/customers/editing", tokenA, customerBody("X"))
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "guardar sin selección")

	decode(t, f.do(t, http.MethodPost, "/api/customers/editing/id-retail", tokenB, nil), &state)
	resp = f.do(t, http.MethodDelete, "/api/customers/editing", tokenB, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	decode(t, f.do(t, http.MethodGet, "/api/customers/editing", tokenB, nil), &state)
	assert.Equal(t, "idle", state.State)
}

func TestCustomers_Exportaciones(t *testing.T) {
	f := newAPI(t)
	token := tokenForSession(t, testSessionID)

	resp := f.do(t, http.MethodGet, "/api/customers/export.xlsx", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, excel.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp2 := f.do(t, http.MethodGet, "/api/customers/export.pdf", token, nil)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "application/pdf", resp2.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp2.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDashboard_Summary(t *testing.T) {
	f := newAPI(t)

	var out dto.DashboardSummaryDTO
	decode(t, f.do(t, http.MethodGet, "/api/dashboard/summary", tokenForSession(t, testSessionID), nil), &out)
	assert.Equal(t, 2, out.TotalCustomers)
	assert.Equal(t, "51.000", out.ForecastRevenueLabel)
	assert.Equal(t, 1, out.AtRisk, "Retail X va muy por debajo del forecast")
	require.Len(t, out.Portfolio, 2)
}
