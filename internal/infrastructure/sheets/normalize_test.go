package sheets_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return "minted-" + strconv.Itoa(n)
	}
}

func TestNormalize_HojaVacia(t *testing.T) {
	out := sheets.Normalize(nil, counterIDs())
	require.NotNil(t, out, "debe devolver un conjunto vacío, no nil")
	assert.Empty(t, out)

	out = sheets.Normalize([][]string{sheets.Columns}, counterIDs())
	assert.Empty(t, out)
}

func TestNormalize_ColumnasAusentesYFilasVacias(t *testing.T) {
	rows := [][]string{
		{"CustomerName", "CustomerId", "ForecastYearlyRevenue", "Extra"},
		{"Acme A/S", "id-1", "10000.0", "ignorado"},
		{"", "  ", "", ""},
		{},
		{"Nordic ApS"}, // fila corta: el resto de columnas vacías
	}
	out := sheets.Normalize(rows, counterIDs())
	require.Len(t, out, 2)

	assert.Equal(t, "id-1", out[0].ID)
	assert.Equal(t, "Acme A/S", out[0].Name)
	assert.True(t, decimal.NewFromInt(10000).Equal(out[0].ForecastYearlyRevenue))
	assert.True(t, out[0].ActualRevenueToDate.IsZero(), "columna ausente → 0")
	assert.Equal(t, "", out[0].CVR)

	assert.Equal(t, "Nordic ApS", out[1].Name)
	assert.Equal(t, "minted-1", out[1].ID, "ID vacío se completa")
}

func TestNormalize_CoercionDeTipos(t *testing.T) {
	rows := [][]string{
		sheets.Columns,
		{"id-1", "Acme", "", "c", "a", "abc", "-5", "NaT", "2024-03-01 00:00:00", ""},
		{"id-2", "Retail", "", "c", "a", "1e3", "12.50", "2024-02-29", "3/15/2024", "2025-01-01T10:00:00Z"},
	}
	out := sheets.Normalize(rows, counterIDs())
	require.Len(t, out, 2)

	assert.True(t, out[0].ForecastYearlyRevenue.IsZero(), "no numérico → 0")
	assert.True(t, out[0].ActualRevenueToDate.IsZero(), "negativo → 0")
	assert.True(t, out[0].AccountCreatedDate.IsZero(), "fecha inválida → ausente")
	assert.Equal(t, entity.Date{Year: 2024, Month: time.March, Day: 1}, out[0].FirstTripDate)

	assert.True(t, decimal.NewFromInt(1000).Equal(out[1].ForecastYearlyRevenue))
	assert.True(t, decimal.RequireFromString("12.5").Equal(out[1].ActualRevenueToDate))
	assert.Equal(t, "2024-02-29", out[1].AccountCreatedDate.String())
	assert.Equal(t, "2024-03-15", out[1].FirstTripDate.String())
	assert.Equal(t, "2025-01-01T10:00:00Z", out[1].UpdatedAt)
}

func TestNormalize_ConservaOrden(t *testing.T) {
	rows := [][]string{
		{"CustomerId", "CustomerName"},
		{"c", "Retail X"},
		{"a", "Acme A/S"},
		{"b", "Nordic ApS"},
	}
	out := sheets.Normalize(rows, counterIDs())
	require.Len(t, out, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestSerialize_EncabezadoYFechasISO(t *testing.T) {
	c := &entity.Customer{
		ID:                    "id-1",
		Name:                  "Acme A/S",
		ForecastYearlyRevenue: decimal.NewFromInt(42000),
		ActualRevenueToDate:   decimal.Zero,
		AccountCreatedDate:    entity.Date{Year: 2024, Month: time.January, Day: 5},
		UpdatedAt:             "2026-10-15T08:00:00Z",
	}
	rows := sheets.Serialize([]*entity.Customer{c})
	require.Len(t, rows, 2)
	assert.Equal(t, sheets.Columns, rows[0])
	assert.Equal(t, []string{"id-1", "Acme A/S", "", "", "", "42000", "0", "2024-01-05", "", "2026-10-15T08:00:00Z"}, rows[1])
}

// Normalizar es idempotente: serializar y volver a normalizar un conjunto ya normalizado
// produce el mismo conjunto.
func TestRoundTrip_Idempotente(t *testing.T) {
	rows := [][]string{
		sheets.Columns,
		{"id-1", "Acme A/S", "12345678", "Lars", "Pia", "42000.0", "30000", "2024-01-05", "1/2/2024", "2026-10-15T08:00:00Z"},
		{"", "Nordic ApS", "", "Søren", "Team", "x", "", "", "", ""},
	}
	first := sheets.Normalize(rows, counterIDs())
	second := sheets.Normalize(sheets.Serialize(first), counterIDs())

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "registro %d debe sobrevivir el round-trip", i)
	}
}

func TestParseSheetDate_FormatosRegionalesYSeriales(t *testing.T) {
	jan15 := entity.Date{Year: 2024, Month: time.January, Day: 15}
	cases := map[string]entity.Date{
		"15.1.2024":  jan15,
		"15.01.2024": jan15,
		"15-1-2024":  jan15,
		"45306":      jan15,
		"45306.75":   jan15,
		"1":          {Year: 1899, Month: time.December, Day: 31},
		"0":          {},
		"-3":         {},
		"99999999":   {},
		"31.2.2024":  {},
	}
	for in, want := range cases {
		assert.Equal(t, want, sheets.ParseSheetDate(in), "entrada %q", in)
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, sheets.ParseAmount("").IsZero())
	assert.True(t, sheets.ParseAmount(" 15 ").Equal(decimal.NewFromInt(15)))
	assert.True(t, sheets.ParseAmount("1.000,50").IsZero())
}
