// Package backend elige el RowStore según SHEETS_BACKEND.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/cs-portfolio/internal/infrastructure/excel"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/postgres"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
	"github.com/jhoicas/cs-portfolio/pkg/config"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

// Open abre el RowStore configurado. closeFn libera los recursos (pool de PostgreSQL) y nunca es nil.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (store sheets.RowStore, closeFn func(), err error) {
	closeFn = func() {}
	switch cfg.Sheets.Backend {
	case config.BackendGoogle:
		gs, err := sheets.NewGoogleStore(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, closeFn, err
		}
		log.Info().Str("spreadsheet_id", cfg.Sheets.SpreadsheetID).Msg("backend Google Sheets")
		return gs, closeFn, nil

	case config.BackendExcel:
		log.Info().Str("path", cfg.Sheets.WorkbookPath).Msg("backend libro Excel local")
		return excel.NewWorkbookStore(cfg.Sheets.WorkbookPath), closeFn, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, closeFn, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		ws := postgres.NewWorksheetStore(pool)
		if err := ws.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, closeFn, fmt.Errorf("esquema worksheet_rows: %w", err)
		}
		log.Info().Str("db", cfg.DB.DBName).Msg("backend PostgreSQL")
		return ws, pool.Close, nil

	case config.BackendMemory:
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		return sheets.NewMemoryStore(), closeFn, nil

	default:
		return nil, closeFn, fmt.Errorf("backend desconocido %q", cfg.Sheets.Backend)
	}
}
