package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ValidationError indica que la entrada del caller falla una precondición
// verificable sin I/O. Field permite mostrar el mensaje junto al campo del formulario.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError construye un error de validación con campo asociado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StoreError envuelve un fallo reportado por un repositorio (red, constraint,
// validación del servidor). No se reintenta aquí: la política de retry es del caller.
type StoreError struct {
	Op  string // operación que falló: "crear lote", "crear movimiento", ...
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// CompensationFailedError indica que la creación del movimiento falló y que
// además falló el borrado compensatorio del lote recién creado. El sistema queda
// con un lote huérfano que requiere limpieza manual; ambos errores se conservan.
type CompensationFailedError struct {
	BatchID     string
	MovementErr error
	RollbackErr error
}

func (e *CompensationFailedError) Error() string {
	return fmt.Sprintf("lote huérfano %s: crear movimiento: %v; borrar lote: %v",
		e.BatchID, e.MovementErr, e.RollbackErr)
}

func (e *CompensationFailedError) Unwrap() []error {
	return []error{e.MovementErr, e.RollbackErr}
}
