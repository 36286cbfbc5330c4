package sheets

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// Nombres de columna de la hoja "Customers". El orden es el del encabezado que se escribe.
const (
	ColCustomerID            = "CustomerId"
	ColCustomerName          = "CustomerName"
	ColCVR                   = "CVR"
	ColCommercialContact     = "CommercialContact"
	ColAdminContact          = "AdminContact"
	ColForecastYearlyRevenue = "ForecastYearlyRevenue"
	ColActualRevenueToDate   = "ActualRevenueToDate"
	ColAccountCreatedDate    = "AccountCreatedDate"
	ColFirstTripDate         = "FirstTripDate"
	ColUpdatedAt             = "UpdatedAt"
)

// Columns encabezado esperado, en orden.
var Columns = []string{
	ColCustomerID,
	ColCustomerName,
	ColCVR,
	ColCommercialContact,
	ColAdminContact,
	ColForecastYearlyRevenue,
	ColActualRevenueToDate,
	ColAccountCreatedDate,
	ColFirstTripDate,
	ColUpdatedAt,
}

// Formatos de fecha aceptados al leer (las celdas las escriben humanos y la propia API).
var dateLayouts = []string{
	entity.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2.1.2006",
	"2-1-2006",
}

// Época de los números de serie de fecha de Google Sheets y Excel (día 0) y el
// mayor serial válido (9999-12-31).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const maxDateSerial = 2958465

// Normalize convierte filas crudas (encabezado + datos) en registros tipados.
//   - Descarta filas completamente vacías.
//   - Columnas ausentes se tratan como vacías; columnas extra se ignoran.
//   - Montos inválidos o negativos → 0; fechas inválidas → ausentes.
//   - IDs vacíos se completan con newID().
//
// Es determinista salvo por newID, y conserva el orden de las filas.
func Normalize(rows [][]string, newID func() string) []*entity.Customer {
	out := []*entity.Customer{}
	if len(rows) == 0 {
		return out
	}
	index := headerIndex(rows[0])
	for _, raw := range rows[1:] {
		if isBlankRow(raw) {
			continue
		}
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(raw) {
				return ""
			}
			return raw[i]
		}
		c := &entity.Customer{
			ID:                    strings.TrimSpace(cell(ColCustomerID)),
			Name:                  cell(ColCustomerName),
			CVR:                   cell(ColCVR),
			CommercialContact:     cell(ColCommercialContact),
			AdminContact:          cell(ColAdminContact),
			ForecastYearlyRevenue: ParseAmount(cell(ColForecastYearlyRevenue)),
			ActualRevenueToDate:   ParseAmount(cell(ColActualRevenueToDate)),
			AccountCreatedDate:    ParseSheetDate(cell(ColAccountCreatedDate)),
			FirstTripDate:         ParseSheetDate(cell(ColFirstTripDate)),
			UpdatedAt:             strings.TrimSpace(cell(ColUpdatedAt)),
		}
		if c.ID == "" {
			c.ID = newID()
		}
		out = append(out, c)
	}
	return out
}

// Serialize produce el encabezado regenerado y una fila de texto por registro.
func Serialize(customers []*entity.Customer) [][]string {
	rows := make([][]string, 0, len(customers)+1)
	rows = append(rows, append([]string(nil), Columns...))
	for _, c := range customers {
		if c == nil {
			continue
		}
		rows = append(rows, []string{
			c.ID,
			c.Name,
			c.CVR,
			c.CommercialContact,
			c.AdminContact,
			c.ForecastYearlyRevenue.String(),
			c.ActualRevenueToDate.String(),
			c.AccountCreatedDate.String(),
			c.FirstTripDate.String(),
			c.UpdatedAt,
		})
	}
	return rows
}

// ParseAmount interpreta un monto; vacío, inválido o negativo devuelve 0.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseSheetDate interpreta una fecha en cualquiera de los formatos aceptados.
// Si no se reconoce, devuelve la fecha ausente (no es un error).
func ParseSheetDate(s string) entity.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.NewDate(t)
		}
	}
	if serial, err := decimal.NewFromString(s); err == nil {
		days := serial.IntPart()
		if days > 0 && days <= maxDateSerial {
			return entity.NewDate(serialEpoch.AddDate(0, 0, int(days)))
		}
	}
	return entity.Date{}
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
