package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cs-portfolio/internal/domain"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
)

// SpreadsheetExporter genera un libro .xlsx con el conjunto de clientes.
type SpreadsheetExporter interface {
	ExportCustomers(customers []*entity.Customer) ([]byte, error)
}

// ExportUseCase exportación del conjunto actual, generada de nuevo en cada petición.
type ExportUseCase struct {
	manager  *Manager
	exporter SpreadsheetExporter
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(manager *Manager, exporter SpreadsheetExporter) *ExportUseCase {
	return &ExportUseCase{manager: manager, exporter: exporter, now: time.Now}
}

// ExportXLSX devuelve el libro y el nombre de archivo sugerido.
// Con la hoja caída no exporta un libro vacío: devuelve domain.ErrBackendUnavailable.
func (uc *ExportUseCase) ExportXLSX(ctx context.Context) (data []byte, filename string, err error) {
	view := uc.manager.Snapshot(ctx)
	if view.Degraded {
		return nil, "", domain.ErrBackendUnavailable
	}
	data, err = uc.exporter.ExportCustomers(view.Customers)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar xlsx: %w", err)
	}
	filename = fmt.Sprintf("customers_%s.xlsx", uc.now().Format("20060102"))
	return data, filename, nil
}
