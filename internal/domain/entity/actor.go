package entity

import "time"

// Roles válidos para Actor (conjunto cerrado).
const (
	RoleAdmin     = "admin"
	RoleGerente   = "gerente"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Operation operación del ledger sujeta a autorización (conjunto cerrado, no strings libres).
type Operation string

const (
	OpRecordInflow  Operation = "RECORD_INFLOW"
	OpRecordOutflow Operation = "RECORD_OUTFLOW"
	OpAdjust        Operation = "ADJUST"
	OpRevert        Operation = "REVERT"
	OpSoftDelete    Operation = "SOFT_DELETE"
	OpEditNotes     Operation = "EDIT_NOTES"
	OpReadHistory   Operation = "READ_HISTORY"
)

// Actor usuario del directorio de personal (staff de una unidad de negocio).
type Actor struct {
	ID        string
	UnitID    string
	Name      string
	Role      string // admin, gerente, bodeguero, vendedor
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// roleCapabilities tabla de capacidades: rol -> operaciones permitidas.
// ADJUST, REVERT y SOFT_DELETE reescriben historia: solo roles gerenciales.
var roleCapabilities = map[string]map[Operation]bool{
	RoleAdmin: {
		OpRecordInflow: true, OpRecordOutflow: true, OpAdjust: true,
		OpRevert: true, OpSoftDelete: true, OpEditNotes: true, OpReadHistory: true,
	},
	RoleGerente: {
		OpRecordInflow: true, OpRecordOutflow: true, OpAdjust: true,
		OpRevert: true, OpSoftDelete: true, OpEditNotes: true, OpReadHistory: true,
	},
	RoleBodeguero: {
		OpRecordInflow: true, OpRecordOutflow: true,
		OpEditNotes: true, OpReadHistory: true,
	},
	RoleVendedor: {
		OpRecordInflow: true, OpRecordOutflow: true,
		OpEditNotes: true, OpReadHistory: true,
	},
}

// RoleAllows indica si el rol tiene la capacidad para la operación.
// Rol desconocido no tiene ninguna capacidad.
func RoleAllows(role string, op Operation) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[op]
}
