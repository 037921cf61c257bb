package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item producto rastreado en el kardex de una unidad.
// CurrentStock es el saldo materializado: SIEMPRE igual a la suma neta de los
// movimientos no revertidos y no borrados del ítem, y nunca negativo.
// Solo el reconciliador de saldos lo escribe (dentro de una transacción);
// ningún otro componente modifica esta columna.
type Item struct {
	ID           string
	UnitID       string
	Name         string
	CurrentStock decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
