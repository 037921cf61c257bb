package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia para ítems y su saldo materializado.
// Las primitivas de saldo se usan SOLO dentro de la transacción del
// reconciliador, nunca sueltas: el saldo y su fila de kardex viajan juntos.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	ListByUnit(unitID string, limit, offset int) ([]*entity.Item, error)

	// IncrementStock suma qty al saldo de forma atómica (sin precondición:
	// una entrada nunca puede fallar por disponibilidad).
	IncrementStock(itemID string, qty decimal.Decimal) error

	// TryDecrementStock resta qty SOLO si el saldo alcanza, en una única
	// sentencia condicional. Devuelve false si el saldo era insuficiente;
	// ese booleano es la única fuente de verdad sobre disponibilidad
	// (nunca un chequeo previo con lectura separada).
	TryDecrementStock(itemID string, qty decimal.Decimal) (bool, error)
}
