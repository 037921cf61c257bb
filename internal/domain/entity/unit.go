package entity

import "time"

// Unit unidad de negocio (local/sucursal) dueña de ítems y movimientos.
type Unit struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
