package production

import (
	"context"

	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que completar una OP (update de la
// orden + alta de todas las filas de stock) y los reverts sean atómicos:
// o se aplica todo, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.FinishedStockRepository,
	) error) error
}
