package repository

import "github.com/jhoicas/Confeccion-api/internal/domain/entity"

// StockFilter filtros para listar stock de producto terminado.
type StockFilter struct {
	ProductID string
	Status    string
	Limit     int
	Offset    int
}

// FinishedStockRepository define el puerto de persistencia para el stock de
// producto terminado. CreateBatch debe ejecutarse dentro de la transacción de
// completado de la OP: o se crean todas las filas o ninguna.
type FinishedStockRepository interface {
	CreateBatch(records []*entity.FinishedProductStock) error
	GetByID(id string) (*entity.FinishedProductStock, error)
	ListByOrder(orderID string) ([]*entity.FinishedProductStock, error)
	List(filter StockFilter) ([]*entity.FinishedProductStock, error)
	// DeleteByOrder elimina todas las filas creadas por el completado de una OP
	// (solo lo usa el revert completed→packing). Devuelve cuántas eliminó.
	DeleteByOrder(orderID string) (int, error)
	UpdateStatus(id, status string) error
}
