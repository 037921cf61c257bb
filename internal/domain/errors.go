package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrActorUnavailable  = errors.New("no se pudo resolver el actor")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyReverted   = errors.New("el movimiento ya fue revertido")
)

// Violation una regla de validación incumplida sobre un campo.
type Violation struct {
	Field   string
	Message string
}

// ValidationErrors agrupa TODAS las reglas violadas de una petición.
// El validador nunca corta en la primera falla: el caller recibe el listado completo.
type ValidationErrors []Violation

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", violation.Field, violation.Message))
	}
	return "validación: " + strings.Join(msgs, "; ")
}

// HasViolations indica si hay al menos una regla violada.
func (v ValidationErrors) HasViolations() bool { return len(v) > 0 }

// PersistenceError falla de infraestructura al persistir (tx abortada, conexión caída).
// A diferencia de ErrInsufficientStock, ES reintentable por el caller sin información nueva.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError envuelve un error de infraestructura con la operación que falló.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsRetryable indica si el error es transitorio y el caller puede reintentar tal cual.
func IsRetryable(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
