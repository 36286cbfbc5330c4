package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleStore RowStore sobre Google Sheets (API v4, cuenta de servicio).
type GoogleStore struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewGoogleStore crea el cliente de la API. Si credentialsFile está vacío se usan las
// credenciales por defecto del entorno (GOOGLE_APPLICATION_CREDENTIALS, metadata server).
func NewGoogleStore(ctx context.Context, spreadsheetID, credentialsFile string) (*GoogleStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("google sheets: spreadsheet id vacío")
	}
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google sheets: crear servicio: %w", err)
	}
	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadRows lee todos los valores de la pestaña sin formato. Las fechas llegan como número
// de serie para no depender de la configuración regional de la hoja.
func (s *GoogleStore) ReadRows(ctx context.Context, worksheet string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(worksheet)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google sheets: leer %s: %w", worksheet, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows escribe las filas desde A1 como texto (RAW) y después limpia lo que quede
// de la versión anterior por debajo o a la derecha del bloque escrito. La API no ofrece
// un reemplazo atómico: se escribe primero para no dejar la hoja vacía si la limpieza falla.
func (s *GoogleStore) WriteRows(ctx context.Context, worksheet string, rows [][]string) error {
	previous, err := s.ReadRows(ctx, worksheet)
	if err != nil {
		return err
	}
	oldHeight, oldWidth := extent(previous)
	height, width := extent(rows)

	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		row := make([]interface{}, width)
		for j := range row {
			if j < len(r) {
				row[j] = r[j]
			} else {
				row[j] = ""
			}
		}
		values[i] = row
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheetRange(worksheet)+"!A1", &gsheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("google sheets: escribir %s: %w", worksheet, err)
	}

	var leftovers []string
	if oldHeight > height {
		leftovers = append(leftovers, fmt.Sprintf("%s!A%d:%s%d",
			sheetRange(worksheet), height+1, columnLetter(max(oldWidth, width)), oldHeight))
	}
	if oldWidth > width && height > 0 {
		leftovers = append(leftovers, fmt.Sprintf("%s!%s1:%s%d",
			sheetRange(worksheet), columnLetter(width+1), columnLetter(oldWidth), height))
	}
	if len(leftovers) == 0 {
		return nil
	}
	_, err = s.svc.Spreadsheets.Values.BatchClear(s.spreadsheetID, &gsheets.BatchClearValuesRequest{
		Ranges: leftovers,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("google sheets: limpiar restos de %s: %w", worksheet, err)
	}
	return nil
}

func extent(rows [][]string) (height, width int) {
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return len(rows), width
}

// sheetRange cita el nombre de la pestaña para notación A1.
func sheetRange(worksheet string) string {
	return "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
}

// columnLetter convierte un índice de columna (1 = A) a letras A1.
func columnLetter(n int) string {
	if n < 1 {
		n = 1
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
