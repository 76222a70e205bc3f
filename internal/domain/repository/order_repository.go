package repository

import "github.com/jhoicas/Confeccion-api/internal/domain/entity"

// OrderFilter filtros para listar OPs.
type OrderFilter struct {
	Status string // vacío = todos
	Lot    string // match por prefijo de lote
	Query  string // búsqueda por producto o lote
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para ProductionOrder (DIP).
// Las OPs nunca se eliminan: solo transicionan a cancelled.
// Update aplica concurrencia optimista: falla con domain.ErrConflict si la
// versión persistida ya no es expectedVersion.
type OrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	List(filter OrderFilter) ([]*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder, expectedVersion int64) error
	// GetByIDForUpdate bloquea la fila de la OP dentro de una transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.ProductionOrder, error)
}
