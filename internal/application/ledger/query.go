package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// QueryUseCase motor de consulta del kardex: listados paginados con filtros y
// agregación por período. Solo lectura; jamás toca el saldo ni abre
// transacciones (tolera leer un saldo levemente desactualizado, nunca una
// fila de kardex sin su efecto ya aplicado).
type QueryUseCase struct {
	gate      *Gate
	items     repository.ItemRepository
	movements repository.StockMovementRepository
}

// NewQueryUseCase construye el motor de consulta.
func NewQueryUseCase(gate *Gate, items repository.ItemRepository, movements repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{gate: gate, items: items, movements: movements}
}

// ListMovements devuelve una página de movimientos de la unidad y el total de
// filas del mismo predicado. Los soft-deleted quedan fuera por defecto; los
// revertidos se listan (son hecho histórico) con su flag.
func (uc *QueryUseCase) ListMovements(ctx context.Context, actorID, unitID string, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	if _, err := uc.gate.Authorize(actorID, entity.OpReadHistory); err != nil {
		return nil, 0, err
	}
	if unitID == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	movements, total, err := uc.movements.List(unitID, filter, limit, offset)
	if err != nil {
		return nil, 0, domain.NewPersistenceError("list movements", err)
	}
	return movements, total, nil
}

// GetItemHistory historial completo de un ítem en un rango, sin tope de
// paginación; mismo predicado de exclusión que los listados.
func (uc *QueryUseCase) GetItemHistory(ctx context.Context, actorID, itemID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	if _, err := uc.gate.Authorize(actorID, entity.OpReadHistory); err != nil {
		return nil, err
	}
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return nil, domain.NewPersistenceError("get item", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.movements.ListByItem(itemID, from, to)
	if err != nil {
		return nil, domain.NewPersistenceError("list item history", err)
	}
	return history, nil
}

// GetSummaryByPeriod agrega el período: total entradas, total salidas, cambio
// neto y desglose por motivo. Usa el mismo predicado que el invariante de
// saldo, así el NetChange de todo el tiempo cuadra con CurrentStock.
func (uc *QueryUseCase) GetSummaryByPeriod(ctx context.Context, actorID, unitID string, from, to *time.Time) (*entity.LedgerSummary, error) {
	if _, err := uc.gate.Authorize(actorID, entity.OpReadHistory); err != nil {
		return nil, err
	}
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.movements.Summary(unitID, from, to)
	if err != nil {
		return nil, domain.NewPersistenceError("summary", err)
	}
	return summary, nil
}
