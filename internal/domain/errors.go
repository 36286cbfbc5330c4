package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrIdentifierMismatch = errors.New("identificador de cliente inconsistente")
	ErrBackendUnavailable = errors.New("hoja de cálculo no disponible")
	ErrBackendWrite       = errors.New("no se pudo guardar en la hoja de cálculo")
	ErrReadOnly           = errors.New("modo solo lectura: la hoja de cálculo no respondió")
)
