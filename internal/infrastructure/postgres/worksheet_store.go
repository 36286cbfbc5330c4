package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
)

var _ sheets.RowStore = (*WorksheetStore)(nil)

const createWorksheetRows = `
	CREATE TABLE IF NOT EXISTS worksheet_rows (
		worksheet TEXT   NOT NULL,
		position  INT    NOT NULL,
		cells     TEXT[] NOT NULL,
		PRIMARY KEY (worksheet, position)
	)`

// WorksheetStore RowStore sobre PostgreSQL: cada fila de la hoja es un TEXT[] ordenado por position.
// La sobrescritura completa se hace en una sola transacción (DELETE + COPY).
type WorksheetStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewWorksheetStore construye el adaptador.
func NewWorksheetStore(pool *pgxpool.Pool) *WorksheetStore {
	return &WorksheetStore{pool: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea la tabla si no existe.
func (s *WorksheetStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createWorksheetRows); err != nil {
		return fmt.Errorf("crear tabla worksheet_rows: %w", err)
	}
	return nil
}

// ReadRows devuelve las filas de la hoja en orden. Sin tabla equivale a hoja vacía.
func (s *WorksheetStore) ReadRows(ctx context.Context, worksheet string) ([][]string, error) {
	return readRows(ctx, s.pool, worksheet)
}

func readRows(ctx context.Context, q Querier, worksheet string) ([][]string, error) {
	rows, err := q.Query(ctx,
		`SELECT cells FROM worksheet_rows WHERE worksheet = $1 ORDER BY position`, worksheet)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer worksheet %s: %w", worksheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan fila: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer worksheet %s: %w", worksheet, err)
	}
	return out, nil
}

// WriteRows reemplaza todas las filas de la hoja dentro de una transacción.
func (s *WorksheetStore) WriteRows(ctx context.Context, worksheet string, rows [][]string) error {
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM worksheet_rows WHERE worksheet = $1`, worksheet); err != nil {
			return fmt.Errorf("borrar worksheet %s: %w", worksheet, err)
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"worksheet_rows"},
			[]string{"worksheet", "position", "cells"},
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				cells := rows[i]
				if cells == nil {
					cells = []string{}
				}
				return []any{worksheet, int32(i), cells}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copiar filas de %s: %w", worksheet, err)
		}
		return nil
	})
}
