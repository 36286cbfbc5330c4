package customers

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// Estados de la máquina de edición.
const (
	StateIdle    = "idle"
	StateEditing = "editing"
)

// ErrNotEditing se intentó guardar sin un cliente seleccionado.
var ErrNotEditing = errors.New("no hay ningún cliente en edición")

// EditSessions máquina de edición por sesión autenticada:
// idle → editing(id) → (guardado → idle | cancelado → idle).
// Un Save fallido deja la sesión en editing con la misma selección.
type EditSessions struct {
	manager *Manager

	mu       sync.Mutex
	selected map[string]string // sesión → ID de cliente
}

// NewEditSessions construye la máquina sobre el gestor.
func NewEditSessions(manager *Manager) *EditSessions {
	return &EditSessions{manager: manager, selected: map[string]string{}}
}

// Begin selecciona un cliente para editar; reemplaza cualquier selección previa de la sesión.
func (s *EditSessions) Begin(ctx context.Context, session, id string) (*entity.Customer, error) {
	c, err := s.manager.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.selected[session] = id
	s.mu.Unlock()
	return c, nil
}

// Current devuelve el cliente en edición, o nil si la sesión está en idle.
// Si el cliente ya no existe (borrado desde otra sesión) la sesión vuelve a idle.
func (s *EditSessions) Current(ctx context.Context, session string) (*entity.Customer, error) {
	id, ok := s.selection(session)
	if !ok {
		return nil, nil
	}
	c, err := s.manager.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.clear(session, id)
		return nil, nil
	}
	return c, err
}

// Cancel descarta la selección sin escribir nada.
func (s *EditSessions) Cancel(session string) {
	s.mu.Lock()
	delete(s.selected, session)
	s.mu.Unlock()
}

// Save aplica la edición al cliente seleccionado. Solo vuelve a idle si la escritura tuvo éxito.
func (s *EditSessions) Save(ctx context.Context, session string, in dto.CustomerInput) (*entity.Customer, error) {
	id, ok := s.selection(session)
	if !ok {
		return nil, ErrNotEditing
	}
	c, err := s.manager.Edit(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.clear(session, id)
	return c, nil
}

func (s *EditSessions) selection(session string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.selected[session]
	return id, ok
}

// clear vuelve a idle solo si la selección no cambió mientras tanto.
func (s *EditSessions) clear(session, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[session] == id {
		delete(s.selected, session)
	}
}
