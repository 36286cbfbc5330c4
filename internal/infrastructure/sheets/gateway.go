package sheets

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/domain/repository"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

// DefaultWorksheet nombre de la pestaña (sensible a mayúsculas).
const DefaultWorksheet = "Customers"

var _ repository.CustomerRepository = (*Gateway)(nil)

// Gateway implementación de CustomerRepository sobre un RowStore.
type Gateway struct {
	store     RowStore
	worksheet string
	log       *logger.Logger
	newID     func() string
}

// NewGateway construye el gateway. worksheet vacío usa DefaultWorksheet.
func NewGateway(store RowStore, worksheet string, log *logger.Logger) *Gateway {
	if worksheet == "" {
		worksheet = DefaultWorksheet
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{
		store:     store,
		worksheet: worksheet,
		log:       log,
		newID:     func() string { return uuid.New().String() },
	}
}

// Worksheet nombre de la pestaña que usa el gateway.
func (g *Gateway) Worksheet() string { return g.worksheet }

// LoadAll lee y normaliza la hoja completa.
//
// Si la hoja no está disponible no falla en seco: devuelve un conjunto vacío (no nil)
// junto con un error que envuelve domain.ErrBackendUnavailable, para que el llamador
// pueda seguir en modo solo lectura.
func (g *Gateway) LoadAll(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := g.store.ReadRows(ctx, g.worksheet)
	if err != nil {
		g.log.Warn().Err(err).Str("worksheet", g.worksheet).Msg("hoja no disponible, se devuelve conjunto vacío")
		return []*entity.Customer{}, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	minted := 0
	customers := Normalize(rows, func() string {
		minted++
		return g.newID()
	})
	if minted > 0 {
		g.log.Info().Int("minted_ids", minted).Str("worksheet", g.worksheet).Msg("IDs de cliente completados al leer")
	}
	g.log.Debug().Int("customers", len(customers)).Str("worksheet", g.worksheet).Msg("hoja cargada")
	return customers, nil
}

// SaveAll sobrescribe la hoja completa con el conjunto recibido (no es un upsert).
func (g *Gateway) SaveAll(ctx context.Context, customers []*entity.Customer) error {
	rows := Serialize(customers)
	if err := g.store.WriteRows(ctx, g.worksheet, rows); err != nil {
		g.log.Error().Err(err).Str("worksheet", g.worksheet).Int("customers", len(rows)-1).Msg("escritura de hoja fallida")
		return fmt.Errorf("%w: %w", domain.ErrBackendWrite, err)
	}
	g.log.Info().Str("worksheet", g.worksheet).Int("customers", len(rows)-1).Msg("hoja guardada")
	return nil
}
