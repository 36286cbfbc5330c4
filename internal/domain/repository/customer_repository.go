package repository

import (
	"context"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para el conjunto completo de clientes.
// Solo existen dos primitivas: leer todo y sobrescribir todo. Cualquier optimización
// (parches por fila) es un detalle interno del adaptador, no un cambio de contrato.
type CustomerRepository interface {
	// LoadAll devuelve el conjunto completo, normalizado, en el orden de la hoja.
	LoadAll(ctx context.Context) ([]*entity.Customer, error)
	// SaveAll reemplaza el contenido persistido con el conjunto recibido.
	// El llamador debe pasar siempre el conjunto completo y autoritativo.
	SaveAll(ctx context.Context, customers []*entity.Customer) error
}
