package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
)

// ContentType MIME de un libro .xlsx.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter genera el .xlsx descargable: una pestaña, encabezado y todos los registros.
type Exporter struct {
	sheet string
}

// NewExporter construye el exportador. sheet vacío usa el nombre de la pestaña por defecto.
func NewExporter(sheet string) *Exporter {
	if sheet == "" {
		sheet = sheets.DefaultWorksheet
	}
	return &Exporter{sheet: sheet}
}

// ExportCustomers devuelve los bytes del libro. Los montos van como números.
func (e *Exporter) ExportCustomers(customers []*entity.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), e.sheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar pestaña: %w", err)
	}

	header := make([]interface{}, len(sheets.Columns))
	for i, c := range sheets.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(e.sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(e.sheet, 1, 1, bold)
	}

	for i, c := range customers {
		row := []interface{}{
			c.ID,
			c.Name,
			c.CVR,
			c.CommercialContact,
			c.AdminContact,
			c.ForecastYearlyRevenue.InexactFloat64(),
			c.ActualRevenueToDate.InexactFloat64(),
			c.AccountCreatedDate.String(),
			c.FirstTripDate.String(),
			c.UpdatedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(e.sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: generar libro: %w", err)
	}
	return buf.Bytes(), nil
}
