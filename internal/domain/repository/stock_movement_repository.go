package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementFilter filtros de listado del kardex. Punteros nil = sin filtro.
type MovementFilter struct {
	ItemID         string
	MovementType   string
	Reason         string
	PerformedBy    string
	From           *time.Time
	To             *time.Time
	IncludeDeleted bool // por defecto los soft-deleted quedan fuera
}

// StockMovementRepository puerto de persistencia para el kardex (log append-mostly).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)

	// GetByIDForUpdate bloquea la fila del movimiento (SELECT FOR UPDATE);
	// usar solo dentro de la transacción de reversión.
	GetByIDForUpdate(id string) (*entity.StockMovement, error)

	// MarkReverted marca reverted = true de forma condicional
	// (WHERE reverted = false). false = ya estaba revertido.
	MarkReverted(id string) (bool, error)

	// UpdateNotes edita solo las notas. false = no existe o está borrado.
	UpdateNotes(id, notes string) (bool, error)

	// SoftDelete marca deleted_at. false = no existe o ya estaba borrado.
	// NO compensa el saldo; ver comentario en entity.StockMovement.
	SoftDelete(id string, at time.Time) (bool, error)

	// List devuelve una página de movimientos de la unidad más el total
	// de filas que satisfacen el mismo predicado.
	List(unitID string, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)

	// ListByItem historial completo de un ítem en un rango (sin paginación).
	ListByItem(itemID string, from, to *time.Time) ([]*entity.StockMovement, error)

	// Summary agrega el período con el mismo predicado de exclusión que el saldo.
	Summary(unitID string, from, to *time.Time) (*entity.LedgerSummary, error)
}
