// Package portfolio contiene la lógica pura sobre el conjunto de clientes: búsqueda,
// ordenamiento y salud del portafolio. No accede a la hoja de cálculo ni muta el conjunto.
package portfolio

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// Search filtra por subcadena, sin distinguir mayúsculas, sobre nombre, CVR, contacto
// comercial y contacto administrativo (OR entre campos). Una consulta vacía devuelve todo.
// El resultado es una vista nueva; el slice de entrada no se modifica.
func Search(customers []*entity.Customer, query string) []*entity.Customer {
	q := strings.TrimSpace(query)
	out := make([]*entity.Customer, 0, len(customers))
	if q == "" {
		return append(out, customers...)
	}
	// Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	needle := fold.String(q)
	for _, c := range customers {
		if c == nil {
			continue
		}
		for _, field := range []string{c.Name, c.CVR, c.CommercialContact, c.AdminContact} {
			if strings.Contains(fold.String(field), needle) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
