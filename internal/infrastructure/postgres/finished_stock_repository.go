package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

var _ repository.FinishedStockRepository = (*FinishedStockRepo)(nil)

// FinishedStockRepo implementación de FinishedStockRepository (usable con pool o tx).
type FinishedStockRepo struct {
	q Querier
}

// NewFinishedStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedStockRepository(q Querier) *FinishedStockRepo {
	return &FinishedStockRepo{q: q}
}

const stockColumns = `
	id, product_id, order_id, warehouse, quantity, color, size, cost, price, status, created_at`

// CreateBatch inserta todas las filas de un completado. El caller debe invocarlo
// dentro de la transacción de completado: la atomicidad la da la tx, no este método.
func (r *FinishedStockRepo) CreateBatch(records []*entity.FinishedProductStock) error {
	query := `
		INSERT INTO finished_product_stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, s := range records {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), query,
			s.ID, s.ProductID, s.OrderID, s.Warehouse, s.Quantity,
			s.Color, s.Size, s.Cost, s.Price, s.Status, s.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert finished stock: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una fila por id; nil si no existe.
func (r *FinishedStockRepo) GetByID(id string) (*entity.FinishedProductStock, error) {
	query := `SELECT ` + stockColumns + ` FROM finished_product_stock WHERE id = $1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// ListByOrder filas creadas por el completado de una OP.
func (r *FinishedStockRepo) ListByOrder(orderID string) ([]*entity.FinishedProductStock, error) {
	query := `SELECT ` + stockColumns + ` FROM finished_product_stock WHERE order_id = $1 ORDER BY color, size`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list stock by order: %w", err)
	}
	defer rows.Close()
	return collectStock(rows)
}

// List devuelve las filas que pasan el filtro.
func (r *FinishedStockRepo) List(filter repository.StockFilter) ([]*entity.FinishedProductStock, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + stockColumns + `
		FROM finished_product_stock
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, filter.ProductID, filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list finished stock: %w", err)
	}
	defer rows.Close()
	return collectStock(rows)
}

// DeleteByOrder elimina todas las filas de una OP (revert completed→packing).
func (r *FinishedStockRepo) DeleteByOrder(orderID string) (int, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM finished_product_stock WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete stock by order: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// UpdateStatus cambia el estado de una fila (available → exported).
func (r *FinishedStockRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE finished_product_stock SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update stock status: %w", err)
	}
	return nil
}

func scanStock(row pgx.Row) (*entity.FinishedProductStock, error) {
	var s entity.FinishedProductStock
	err := row.Scan(
		&s.ID, &s.ProductID, &s.OrderID, &s.Warehouse, &s.Quantity,
		&s.Color, &s.Size, &s.Cost, &s.Price, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan finished stock: %w", err)
	}
	return &s, nil
}

func collectStock(rows pgx.Rows) ([]*entity.FinishedProductStock, error) {
	var out []*entity.FinishedProductStock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
