// Package sheets implementa el gateway entre la hoja de cálculo (tabla sin tipos, con
// columnas posiblemente ausentes) y el conjunto tipado de entity.Customer.
package sheets

import (
	"context"
	"sync"
)

// RowStore acceso crudo a una hoja: filas de celdas como texto, la primera fila es el encabezado.
// WriteRows siempre reemplaza la hoja completa.
type RowStore interface {
	ReadRows(ctx context.Context, worksheet string) ([][]string, error)
	WriteRows(ctx context.Context, worksheet string, rows [][]string) error
}

// MemoryStore RowStore en memoria (desarrollo y tests).
type MemoryStore struct {
	mu       sync.Mutex
	sheets   map[string][][]string
	readErr  error
	writeErr error
	writes   int
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: map[string][][]string{}}
}

// ReadRows devuelve una copia de las filas de la hoja (nil si no existe).
func (s *MemoryStore) ReadRows(_ context.Context, worksheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return copyRows(s.sheets[worksheet]), nil
}

// WriteRows reemplaza la hoja completa.
func (s *MemoryStore) WriteRows(_ context.Context, worksheet string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.sheets[worksheet] = copyRows(rows)
	s.writes++
	return nil
}

// SetReadError simula una hoja inaccesible (nil para restaurar).
func (s *MemoryStore) SetReadError(err error) {
	s.mu.Lock()
	s.readErr = err
	s.mu.Unlock()
}

// SetWriteError simula un fallo de escritura (nil para restaurar).
func (s *MemoryStore) SetWriteError(err error) {
	s.mu.Lock()
	s.writeErr = err
	s.mu.Unlock()
}

// Writes cantidad de escrituras exitosas.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func copyRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
