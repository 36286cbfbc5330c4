package portfolio

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// SortKey columna por la que se ordena la vista de clientes.
type SortKey string

const (
	SortByName     SortKey = "CustomerName"          // ascendente
	SortByForecast SortKey = "ForecastYearlyRevenue" // descendente
	SortByActual   SortKey = "ActualRevenueToDate"   // descendente
)

// SortKeys claves aceptadas, en el orden en que se ofrecen en la UI.
var SortKeys = []SortKey{SortByName, SortByForecast, SortByActual}

// ParseSortKey valida la clave; vacío equivale a SortByName.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByName, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("clave de orden desconocida %q", s)
}

// Sort devuelve una vista ordenada (estable) sin tocar el orden de almacenamiento.
// Los nombres se comparan con reglas de colación danesas, ignorando mayúsculas.
func Sort(customers []*entity.Customer, key SortKey) []*entity.Customer {
	out := append(make([]*entity.Customer, 0, len(customers)), customers...)
	switch key {
	case SortByForecast:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ForecastYearlyRevenue.GreaterThan(out[j].ForecastYearlyRevenue)
		})
	case SortByActual:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ActualRevenueToDate.GreaterThan(out[j].ActualRevenueToDate)
		})
	default:
		cl := collate.New(language.Danish, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return cl.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}
