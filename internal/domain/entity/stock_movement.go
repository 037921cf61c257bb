package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento: el signo del efecto sobre el saldo vive AQUÍ,
// nunca en Quantity (que es siempre magnitud positiva).
const (
	MovementTypeIN  = "IN"  // entrada: suma al saldo
	MovementTypeOUT = "OUT" // salida: resta del saldo
)

// Motivos de movimiento (causa semántica, independiente del signo).
const (
	ReasonPurchase            = "PURCHASE"
	ReasonReturn              = "RETURN"
	ReasonAdjustment          = "ADJUSTMENT"
	ReasonSale                = "SALE"
	ReasonInternalConsumption = "INTERNAL_CONSUMPTION"
	ReasonCleaningSupplies    = "CLEANING_SUPPLIES"
)

// reasonTypes motivo -> tipos de movimiento compatibles.
// ADJUSTMENT acepta ambos: el signo lo decide el delta del caller.
var reasonTypes = map[string]map[string]bool{
	ReasonPurchase:            {MovementTypeIN: true},
	ReasonReturn:              {MovementTypeIN: true},
	ReasonAdjustment:          {MovementTypeIN: true, MovementTypeOUT: true},
	ReasonSale:                {MovementTypeOUT: true},
	ReasonInternalConsumption: {MovementTypeOUT: true},
	ReasonCleaningSupplies:    {MovementTypeOUT: true},
}

// KnownReason indica si el motivo pertenece al enum.
func KnownReason(reason string) bool {
	_, ok := reasonTypes[reason]
	return ok
}

// ReasonAllowsType indica si el motivo es compatible con el tipo de movimiento.
func ReasonAllowsType(reason, movementType string) bool {
	types, ok := reasonTypes[reason]
	if !ok {
		return false
	}
	return types[movementType]
}

// StockMovement un evento del kardex. Inmutable salvo Notes (editable),
// Reverted (a lo sumo una vez, terminal) y DeletedAt (soft delete, terminal).
//
// OJO: revertir y borrar NO son lo mismo. Revertir compensa el saldo con el
// delta inverso exacto; el soft delete solo oculta la fila de los listados y
// NO toca el saldo. Un movimiento borrado que ya fue aplicado sigue contando
// en CurrentStock: la corrección financiera exige una reversión o un ajuste,
// nunca un borrado.
type StockMovement struct {
	ID            string
	UnitID        string
	ItemID        string
	MovementType  string          // IN, OUT
	Reason        string          // PURCHASE, RETURN, ADJUSTMENT, SALE, INTERNAL_CONSUMPTION, CLEANING_SUPPLIES
	Quantity      decimal.Decimal // magnitud, siempre > 0
	UnitCost      decimal.Decimal // >= 0; con significado solo en IN
	PerformedBy   string          // ActorID
	ReferenceID   string          // documento de negocio origen (venta, compra); trazabilidad, no cascada
	ReferenceType string
	Notes         string // obligatorio para ADJUSTMENT
	Reverted      bool
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// SignedQuantity cantidad con signo según el tipo (IN positivo, OUT negativo).
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.MovementType == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// LedgerSummary agregado de un período sobre el kardex de una unidad.
// Calculado con el MISMO predicado de exclusión que el saldo materializado
// (reverted = false, deleted_at IS NULL): el NetChange de "todo el tiempo"
// siempre cuadra con CurrentStock.
type LedgerSummary struct {
	TotalIn   decimal.Decimal
	TotalOut  decimal.Decimal
	NetChange decimal.Decimal
	ByReason  map[string]decimal.Decimal // motivo -> neta con signo
}
