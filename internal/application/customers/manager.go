// Package customers contiene el gestor de registros de clientes: caché del conjunto
// completo, validación y escritura de conjunto completo seguida de recarga.
package customers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/domain/portfolio"
	"github.com/jhoicas/cs-portfolio/internal/domain/repository"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

const maxIDAttempts = 5

// View copia filtrada y ordenada del caché. Modificarla no afecta al gestor.
type View struct {
	Customers []*entity.Customer
	Sort      portfolio.SortKey
	Degraded  bool
}

// Manager gestiona el conjunto de clientes en memoria sobre un CustomerRepository.
//
// Toda mutación trabaja sobre una copia, persiste el conjunto completo y recarga
// el caché desde el repositorio; nunca se aplica la mutación en memoria por adelantado.
type Manager struct {
	repo     repository.CustomerRepository
	log      *logger.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	cache    []*entity.Customer
	loaded   bool
	degraded bool
}

// Option configura el Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// NewManager construye el gestor. El caché se carga en el primer uso.
func NewManager(repo repository.CustomerRepository, log *logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	m := &Manager{
		repo:     repo,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List devuelve la vista buscada y ordenada. Con la hoja caída devuelve una vista vacía marcada Degraded.
func (m *Manager) List(ctx context.Context, query, sortBy string) (*View, error) {
	key, err := portfolio.ParseSortKey(sortBy)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"sort": err.Error()}}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded(ctx)

	found := portfolio.Search(m.cache, query)
	return &View{
		Customers: entity.CloneCustomers(portfolio.Sort(found, key)),
		Sort:      key,
		Degraded:  m.degraded,
	}, nil
}

// Snapshot copia del conjunto completo en el orden de la hoja (exportaciones y dashboard).
func (m *Manager) Snapshot(ctx context.Context) *View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded(ctx)
	return &View{Customers: entity.CloneCustomers(m.cache), Degraded: m.degraded}
}

// Get busca un cliente por ID.
func (m *Manager) Get(ctx context.Context, id string) (*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded(ctx)

	for _, c := range m.cache {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add valida, genera ID, estampa UpdatedAt y persiste el conjunto con el nuevo cliente al final.
func (m *Manager) Add(ctx context.Context, in dto.CustomerInput) (*entity.Customer, error) {
	in = trimInput(in)
	if err := validateInput(m.validate, in); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureWritable(ctx); err != nil {
		return nil, err
	}

	id, err := m.uniqueID()
	if err != nil {
		return nil, err
	}
	created := m.fromInput(id, in)

	next := append(entity.CloneCustomers(m.cache), created)
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.log.Info().Str("customer_id", id).Str("customer_name", created.Name).Msg("cliente creado")
	return m.lookupOr(id, created), nil
}

// Edit reemplaza todos los campos (menos el ID) del cliente indicado. El resto de registros no cambia.
// Si el ID no coincide con exactamente un registro devuelve domain.ErrIdentifierMismatch.
func (m *Manager) Edit(ctx context.Context, id string, in dto.CustomerInput) (*entity.Customer, error) {
	in = trimInput(in)
	if err := validateInput(m.validate, in); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureWritable(ctx); err != nil {
		return nil, err
	}

	idx, matches := -1, 0
	for i, c := range m.cache {
		if c.ID == id {
			idx = i
			matches++
		}
	}
	if matches != 1 {
		return nil, fmt.Errorf("%w: %q coincide con %d registros", domain.ErrIdentifierMismatch, id, matches)
	}

	next := entity.CloneCustomers(m.cache)
	edited := m.fromInput(id, in)
	next[idx] = edited
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.log.Info().Str("customer_id", id).Msg("cliente actualizado")
	return m.lookupOr(id, edited), nil
}

// Delete elimina el cliente. Un ID inexistente no es error y no escribe la hoja.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureWritable(ctx); err != nil {
		return err
	}

	next := make([]*entity.Customer, 0, len(m.cache))
	for _, c := range m.cache {
		if c.ID != id {
			next = append(next, c.Clone())
		}
	}
	if len(next) == len(m.cache) {
		m.log.Debug().Str("customer_id", id).Msg("borrado sin efecto: ID inexistente")
		return nil
	}
	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.log.Info().Str("customer_id", id).Msg("cliente eliminado")
	return nil
}

// Reload invalida el caché y lo vuelve a leer. Devuelve error si la hoja sigue sin responder.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// ── internos (llamar con mu tomado) ──────────────────────────────────────────

// ensureLoaded carga en el primer uso y reintenta mientras el caché esté degradado,
// así la vista vacía solo dura lo que dure la caída de la hoja.
func (m *Manager) ensureLoaded(ctx context.Context) {
	if !m.loaded || m.degraded {
		_ = m.load(ctx)
	}
}

// ensureWritable reintenta la carga si el caché está degradado; si sigue degradado
// rechaza la mutación para que un conjunto vacío nunca sobrescriba la hoja.
func (m *Manager) ensureWritable(ctx context.Context) error {
	if !m.loaded || m.degraded {
		if err := m.load(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrReadOnly, err)
		}
	}
	return nil
}

func (m *Manager) load(ctx context.Context) error {
	list, err := m.repo.LoadAll(ctx)
	if list == nil {
		list = []*entity.Customer{}
	}
	m.loaded = true
	if err != nil {
		m.cache = []*entity.Customer{}
		m.degraded = true
		m.log.Warn().Err(err).Msg("caché de clientes en modo solo lectura")
		if !errors.Is(err, domain.ErrBackendUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
		}
		return err
	}
	m.cache = list
	m.degraded = false
	return nil
}

// persist escribe el conjunto completo y recarga. Si la escritura falla el caché queda intacto.
func (m *Manager) persist(ctx context.Context, next []*entity.Customer) error {
	if err := m.repo.SaveAll(ctx, next); err != nil {
		if !errors.Is(err, domain.ErrBackendWrite) {
			err = fmt.Errorf("%w: %w", domain.ErrBackendWrite, err)
		}
		return err
	}
	if err := m.load(ctx); err != nil {
		m.log.Warn().Err(err).Msg("recarga tras escritura fallida")
	}
	return nil
}

func (m *Manager) fromInput(id string, in dto.CustomerInput) *entity.Customer {
	now := m.now()
	today := entity.NewDate(now)
	created := in.AccountCreatedDate
	if created.IsZero() {
		created = today
	}
	firstTrip := in.FirstTripDate
	if firstTrip.IsZero() {
		firstTrip = today
	}
	return &entity.Customer{
		ID:                    id,
		Name:                  in.Name,
		CVR:                   in.CVR,
		CommercialContact:     in.CommercialContact,
		AdminContact:          in.AdminContact,
		ForecastYearlyRevenue: in.ForecastYearlyRevenue,
		ActualRevenueToDate:   in.ActualRevenueToDate,
		AccountCreatedDate:    created,
		FirstTripDate:         firstTrip,
		UpdatedAt:             now.UTC().Format(entity.UpdatedAtLayout),
	}
}

func (m *Manager) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := m.newID()
		if id != "" && !m.contains(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no se pudo generar un ID de cliente único")
}

func (m *Manager) contains(id string) bool {
	for _, c := range m.cache {
		if c.ID == id {
			return true
		}
	}
	return false
}

// lookupOr devuelve el registro recargado o, si la recarga falló, el que se escribió.
func (m *Manager) lookupOr(id string, written *entity.Customer) *entity.Customer {
	for _, c := range m.cache {
		if c.ID == id {
			return c.Clone()
		}
	}
	return written.Clone()
}
