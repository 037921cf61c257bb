package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// RevertMovement aplica la compensación inversa exacta de un movimiento y lo
// marca reverted = true, todo en una transacción. Restringido a gerenciales.
//
// Revertir una salida re-acredita el saldo (suma, sin chequeo). Revertir una
// entrada SÍ necesita chequeo de disponibilidad: el stock que entró pudo
// haberse consumido después, y compensar a ciegas dejaría saldo negativo.
// Llamarlo dos veces falla con domain.ErrAlreadyReverted y deja el saldo
// intacto: el flag se chequea y se voltea en la MISMA transacción que la
// compensación (el MarkReverted condicional cubre la carrera entre dos
// reversiones concurrentes del mismo movimiento).
func (uc *LedgerUseCase) RevertMovement(ctx context.Context, movementID, actorID string) (*entity.StockMovement, error) {
	if _, err := uc.gate.Authorize(actorID, entity.OpRevert); err != nil {
		return nil, err
	}

	var reverted *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		movement, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return domain.NewPersistenceError("get movement", err)
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Reverted {
			return domain.ErrAlreadyReverted
		}

		switch movement.MovementType {
		case entity.MovementTypeOUT:
			if err := itemRepo.IncrementStock(movement.ItemID, movement.Quantity); err != nil {
				return domain.NewPersistenceError("re-credit stock", err)
			}
		case entity.MovementTypeIN:
			ok, err := itemRepo.TryDecrementStock(movement.ItemID, movement.Quantity)
			if err != nil {
				return domain.NewPersistenceError("debit stock", err)
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
		default:
			return domain.ErrInvalidInput
		}

		ok, err := movRepo.MarkReverted(movementID)
		if err != nil {
			return domain.NewPersistenceError("mark reverted", err)
		}
		if !ok {
			return domain.ErrAlreadyReverted
		}
		movement.Reverted = true
		reverted = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reverted, nil
}

// EditNotes edita solo las notas de un movimiento: sin efecto sobre el saldo,
// sin restricción gerencial (cualquier staff activo con EDIT_NOTES).
func (uc *LedgerUseCase) EditNotes(ctx context.Context, movementID, notes, actorID string) (*entity.StockMovement, error) {
	if _, err := uc.gate.Authorize(actorID, entity.OpEditNotes); err != nil {
		return nil, err
	}
	ok, err := uc.movements.UpdateNotes(movementID, notes)
	if err != nil {
		return nil, domain.NewPersistenceError("update notes", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	movement, err := uc.movements.GetByID(movementID)
	if err != nil {
		return nil, domain.NewPersistenceError("get movement", err)
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// SoftDelete marca deleted_at: el movimiento desaparece de los listados por
// defecto pero su efecto ya aplicado SIGUE contando en CurrentStock.
//
// ESTA ASIMETRÍA ES DELIBERADA: el soft delete es un cambio de visibilidad
// del historial, NO una corrección financiera. Corregir el saldo exige
// RevertMovement o un ajuste. Compensar aquí además de en la reversión
// produciría doble compensación. Borrar dos veces es un no-op.
func (uc *LedgerUseCase) SoftDelete(ctx context.Context, movementID, actorID string) error {
	if _, err := uc.gate.Authorize(actorID, entity.OpSoftDelete); err != nil {
		return err
	}
	ok, err := uc.movements.SoftDelete(movementID, uc.now())
	if err != nil {
		return domain.NewPersistenceError("soft delete", err)
	}
	if !ok {
		// Distinguir inexistente de ya-borrado: solo el primero es error.
		movement, err := uc.movements.GetByID(movementID)
		if err != nil {
			return domain.NewPersistenceError("get movement", err)
		}
		if movement == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}
