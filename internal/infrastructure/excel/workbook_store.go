// Package excel usa excelize para dos cosas: un libro .xlsx local como base de datos de la
// hoja "Customers" (backend "excel") y la exportación descargable del listado de clientes.
package excel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
)

var _ sheets.RowStore = (*WorkbookStore)(nil)

// WorkbookStore RowStore sobre un archivo .xlsx. Conserva las demás pestañas del libro.
type WorkbookStore struct {
	path string
	mu   sync.Mutex
}

// NewWorkbookStore construye el store. El archivo se crea en la primera escritura.
func NewWorkbookStore(path string) *WorkbookStore {
	return &WorkbookStore{path: path}
}

// ReadRows lee la pestaña. Un libro o pestaña inexistente equivale a una hoja vacía.
func (s *WorkbookStore) ReadRows(_ context.Context, worksheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("excel: abrir %s: %w", s.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(worksheet)
	if err != nil {
		return nil, fmt.Errorf("excel: pestaña %s: %w", worksheet, err)
	}
	if idx == -1 {
		return nil, nil
	}
	rows, err := f.GetRows(worksheet)
	if err != nil {
		return nil, fmt.Errorf("excel: leer %s: %w", worksheet, err)
	}
	return rows, nil
}

// WriteRows reemplaza el contenido de la pestaña y guarda el libro (archivo temporal + rename).
func (s *WorkbookStore) WriteRows(_ context.Context, worksheet string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), worksheet); err != nil {
			return fmt.Errorf("excel: renombrar pestaña: %w", err)
		}
	case err != nil:
		return fmt.Errorf("excel: abrir %s: %w", s.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(worksheet)
	if err != nil {
		return fmt.Errorf("excel: pestaña %s: %w", worksheet, err)
	}
	oldWidth := 0
	if idx == -1 {
		if _, err := f.NewSheet(worksheet); err != nil {
			return fmt.Errorf("excel: crear pestaña %s: %w", worksheet, err)
		}
	} else {
		previous, err := f.GetRows(worksheet)
		if err != nil {
			return fmt.Errorf("excel: leer %s: %w", worksheet, err)
		}
		for _, r := range previous {
			oldWidth = max(oldWidth, len(r))
		}
		// Filas sobrantes de una versión anterior más larga, de abajo hacia arriba.
		for r := len(previous); r > len(rows); r-- {
			if err := f.RemoveRow(worksheet, r); err != nil {
				return fmt.Errorf("excel: eliminar fila %d: %w", r, err)
			}
		}
	}

	width := oldWidth
	for _, r := range rows {
		width = max(width, len(r))
	}
	for i, r := range rows {
		values := make([]interface{}, width)
		for j := range values {
			if j < len(r) {
				values[j] = r[j]
			} else {
				values[j] = nil
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(worksheet, cell, &values); err != nil {
			return fmt.Errorf("excel: escribir fila %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("excel: crear directorio: %w", err)
	}
	// excelize exige extensión .xlsx también en el temporal.
	tmp := filepath.Join(filepath.Dir(s.path), ".tmp-"+filepath.Base(s.path))
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("excel: guardar %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("excel: reemplazar %s: %w", s.path, err)
	}
	return nil
}
