package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	// ErrConflict la OP cambió por debajo del snapshot usado para decidir (versión optimista).
	ErrConflict = errors.New("conflicto con el estado actual")
	// ErrIllegalTransition la transición de estado solicitada no es legal desde el estado actual.
	ErrIllegalTransition = errors.New("transición de estado no permitida")
)
