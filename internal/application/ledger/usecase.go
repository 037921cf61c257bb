package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LedgerUseCase reconciliador de saldos: registra movimientos del kardex de
// forma transaccional, manteniendo CurrentStock en lock-step con el log.
//
// El algoritmo central: para toda mutación que BAJA el saldo, el chequeo
// ("¿alcanza el stock?") y el acto (restar + insertar la fila) son UNA sola
// sentencia condicional contra la fila del ítem — nunca leer-y-luego-escribir,
// que con dos salidas concurrentes deja el saldo negativo (lost update).
// Las entradas suman sin precondición, en la misma transacción que el insert.
type LedgerUseCase struct {
	gate      *Gate
	items     repository.ItemRepository
	movements repository.StockMovementRepository
	txRunner  TxRunner
	now       func() time.Time
}

// NewLedgerUseCase construye el reconciliador.
func NewLedgerUseCase(
	gate *Gate,
	items repository.ItemRepository,
	movements repository.StockMovementRepository,
	txRunner TxRunner,
) *LedgerUseCase {
	return &LedgerUseCase{
		gate:      gate,
		items:     items,
		movements: movements,
		txRunner:  txRunner,
		now:       time.Now,
	}
}

// MovementInput entrada para registrar una entrada o salida del kardex.
type MovementInput struct {
	UnitID        string
	ActorID       string
	ItemID        string
	Reason        string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	Notes         string
	ReferenceID   string
	ReferenceType string
}

// AdjustInput entrada para un ajuste con delta con signo.
// Notes es obligatorio: un ajuste sin explicación no es auditable.
type AdjustInput struct {
	UnitID  string
	ActorID string
	ItemID  string
	Delta   decimal.Decimal
	Notes   string
}

// RecordInflow registra una entrada: suma atómica al saldo + insert del
// movimiento en la misma transacción. Si pasó autorización y validación,
// siempre tiene éxito (una entrada no depende de disponibilidad).
func (uc *LedgerUseCase) RecordInflow(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if _, err := uc.gate.Authorize(in.ActorID, entity.OpRecordInflow); err != nil {
		return nil, err
	}
	return uc.record(ctx, in, entity.MovementTypeIN)
}

// RecordOutflow registra una salida: decremento condicional
// ("restar donde saldo >= cantidad") + insert en la misma transacción.
// Si el saldo no alcanza devuelve domain.ErrInsufficientStock, nunca
// recorta a cero en silencio.
func (uc *LedgerUseCase) RecordOutflow(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if _, err := uc.gate.Authorize(in.ActorID, entity.OpRecordOutflow); err != nil {
		return nil, err
	}
	in.UnitCost = decimal.Zero // el costo unitario solo tiene significado en entradas
	return uc.record(ctx, in, entity.MovementTypeOUT)
}

// AdjustStock registra un ajuste con delta con signo: positivo se descompone
// en una entrada ADJUSTMENT, negativo en una salida ADJUSTMENT (con el mismo
// chequeo de disponibilidad que cualquier salida). Restringido a roles
// gerenciales.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if _, err := uc.gate.Authorize(in.ActorID, entity.OpAdjust); err != nil {
		return nil, err
	}
	mov := MovementInput{
		UnitID:  in.UnitID,
		ActorID: in.ActorID,
		ItemID:  in.ItemID,
		Reason:  entity.ReasonAdjustment,
		Notes:   in.Notes,
	}
	if in.Delta.IsZero() {
		return nil, domain.ValidationErrors{{Field: "delta", Message: "no puede ser cero"}}
	}
	if in.Delta.GreaterThan(decimal.Zero) {
		mov.Quantity = in.Delta
		return uc.record(ctx, mov, entity.MovementTypeIN)
	}
	mov.Quantity = in.Delta.Neg()
	return uc.record(ctx, mov, entity.MovementTypeOUT)
}

// record valida y ejecuta la mutación dentro de una transacción.
// Validación y autorización ocurren ANTES de abrir la tx; cualquier falla
// posterior aborta la operación completa (nunca hay commit parcial).
func (uc *LedgerUseCase) record(ctx context.Context, in MovementInput, movementType string) (*entity.StockMovement, error) {
	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, domain.NewPersistenceError("get item", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if verrs := validateMovement(in, movementType, item); verrs.HasViolations() {
		return nil, verrs
	}

	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		UnitID:        in.UnitID,
		ItemID:        in.ItemID,
		MovementType:  movementType,
		Reason:        in.Reason,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		PerformedBy:   in.ActorID,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		Notes:         in.Notes,
		CreatedAt:     uc.now(),
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		if movementType == entity.MovementTypeOUT {
			ok, err := itemRepo.TryDecrementStock(in.ItemID, in.Quantity)
			if err != nil {
				return domain.NewPersistenceError("decrement stock", err)
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
		} else {
			if err := itemRepo.IncrementStock(in.ItemID, in.Quantity); err != nil {
				return domain.NewPersistenceError("increment stock", err)
			}
		}
		if err := movRepo.Create(movement); err != nil {
			return domain.NewPersistenceError("create movement", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}
