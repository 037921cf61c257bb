package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única garantía de atomicidad del
// reconciliador: el update de saldo y el insert del kardex viajan juntos,
// o se revierten juntos. Ningún mutex en proceso la sustituye (dos réplicas
// en dos máquinas deben seguir siendo seguras).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
