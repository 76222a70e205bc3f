package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/lot"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// El agregado se persiste como documento: items, detalles por etapa y eventos
// van en columnas JSONB; el resto en columnas planas para filtrar.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de OPs. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	id, lot_number, product_id, product_name, tech_pack_version, warehouse,
	status, quantity_total, items, cost_unit, price_unit,
	cutting_details, revision_details, packing_details, events,
	created_at, updated_at, version`

// Create persiste una OP nueva.
func (r *OrderRepo) Create(order *entity.ProductionOrder) error {
	// Un id con forma de batch es una vista derivada, jamás persistible.
	if lot.IsBatchShapedID(order.ID) {
		return domain.ErrInvalidInput
	}
	items, cuttingDetails, revisionDetails, packingDetails, events, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO production_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(context.Background(), query,
		order.ID, order.LotNumber, order.ProductID, order.ProductName, order.TechPackVersion, order.Warehouse,
		order.Status, order.QuantityTotal, items, order.CostUnit, order.PriceUnit,
		cuttingDetails, revisionDetails, packingDetails, events,
		order.CreatedAt, order.UpdatedAt, order.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una OP por id; nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene la OP y bloquea la fila (SELECT FOR UPDATE). Usar
// dentro de una transacción.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List devuelve las OPs que pasan el filtro, más recientes primero.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.ProductionOrder, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + orderColumns + `
		FROM production_orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR lot_number LIKE $2 || '%')
		  AND ($3 = '' OR lot_number ILIKE '%' || $3 || '%' OR product_name ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		filter.Status, filter.Lot, filter.Query, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Update actualiza la OP con control de versión optimista: si la versión
// persistida ya no es expectedVersion devuelve domain.ErrConflict. Incrementa
// Version en la entidad al confirmar.
func (r *OrderRepo) Update(order *entity.ProductionOrder, expectedVersion int64) error {
	if lot.IsBatchShapedID(order.ID) {
		return domain.ErrInvalidInput
	}
	items, cuttingDetails, revisionDetails, packingDetails, events, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}
	query := `
		UPDATE production_orders
		SET lot_number = $2, status = $3, quantity_total = $4, items = $5,
		    cost_unit = $6, price_unit = $7,
		    cutting_details = $8, revision_details = $9, packing_details = $10,
		    events = $11, updated_at = $12, version = version + 1
		WHERE id = $1 AND version = $13`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.LotNumber, order.Status, order.QuantityTotal, items,
		order.CostUnit, order.PriceUnit,
		cuttingDetails, revisionDetails, packingDetails,
		events, order.UpdatedAt, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// La fila existe con otra versión o no existe; ambas invalidan el snapshot.
		return domain.ErrConflict
	}
	order.Version = expectedVersion + 1
	return nil
}

func (r *OrderRepo) scanOne(row pgx.Row) (*entity.ProductionOrder, error) {
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

// scanOrder escanea una fila completa, deserializando las columnas JSONB.
func scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	var items, cuttingDetails, revisionDetails, packingDetails, events []byte
	err := row.Scan(
		&o.ID, &o.LotNumber, &o.ProductID, &o.ProductName, &o.TechPackVersion, &o.Warehouse,
		&o.Status, &o.QuantityTotal, &items, &o.CostUnit, &o.PriceUnit,
		&cuttingDetails, &revisionDetails, &packingDetails, &events,
		&o.CreatedAt, &o.UpdatedAt, &o.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan production order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if len(events) > 0 {
		if err := json.Unmarshal(events, &o.Events); err != nil {
			return nil, fmt.Errorf("unmarshal events: %w", err)
		}
	}
	if len(cuttingDetails) > 0 {
		if err := json.Unmarshal(cuttingDetails, &o.CuttingDetails); err != nil {
			return nil, fmt.Errorf("unmarshal cutting details: %w", err)
		}
	}
	if len(revisionDetails) > 0 {
		if err := json.Unmarshal(revisionDetails, &o.RevisionDetails); err != nil {
			return nil, fmt.Errorf("unmarshal revision details: %w", err)
		}
	}
	if len(packingDetails) > 0 {
		if err := json.Unmarshal(packingDetails, &o.PackingDetails); err != nil {
			return nil, fmt.Errorf("unmarshal packing details: %w", err)
		}
	}
	return &o, nil
}

// marshalOrderDocs serializa las partes documento del agregado. Los detalles
// opcionales van como NULL mientras la etapa no haya empezado.
func marshalOrderDocs(order *entity.ProductionOrder) (items, cuttingDetails, revisionDetails, packingDetails, events []byte, err error) {
	items, err = json.Marshal(order.Items)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal items: %w", err)
	}
	events, err = json.Marshal(order.Events)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal events: %w", err)
	}
	if order.CuttingDetails != nil {
		cuttingDetails, err = json.Marshal(order.CuttingDetails)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("marshal cutting details: %w", err)
		}
	}
	if order.RevisionDetails != nil {
		revisionDetails, err = json.Marshal(order.RevisionDetails)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("marshal revision details: %w", err)
		}
	}
	if order.PackingDetails != nil {
		packingDetails, err = json.Marshal(order.PackingDetails)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("marshal packing details: %w", err)
		}
	}
	return items, cuttingDetails, revisionDetails, packingDetails, events, nil
}
