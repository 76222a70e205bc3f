package production_test

import (
	"context"
	"errors"

	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/lot"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Imitan el contrato del
// repositorio PostgreSQL: copias en lectura, concurrencia optimista por versión
// y rechazo de ids con forma de batch.
// ──────────────────────────────────────────────────────────────────────────────

var errStockRoto = errors.New("fallo simulado del repositorio de stock")

// copyOrder copia defensiva para que el fake se comporte como una BD: mutar lo
// leído no toca lo almacenado hasta el Update.
func copyOrder(o *entity.ProductionOrder) *entity.ProductionOrder {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	cp.Events = append([]entity.OrderEvent(nil), o.Events...)
	if o.CuttingDetails != nil {
		cd := *o.CuttingDetails
		cd.Jobs = append([]entity.CuttingJob(nil), o.CuttingDetails.Jobs...)
		cp.CuttingDetails = &cd
	}
	if o.RevisionDetails != nil {
		rd := *o.RevisionDetails
		cp.RevisionDetails = &rd
	}
	if o.PackingDetails != nil {
		pd := *o.PackingDetails
		pd.Items = append([]entity.OrderItem(nil), o.PackingDetails.Items...)
		cp.PackingDetails = &pd
	}
	return &cp
}

type fakeOrderRepo struct {
	orders map[string]*entity.ProductionOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.ProductionOrder)}
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(order *entity.ProductionOrder) error {
	if lot.IsBatchShapedID(order.ID) {
		return domain.ErrInvalidInput
	}
	if _, ok := r.orders[order.ID]; ok {
		return domain.ErrDuplicate
	}
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return copyOrder(r.orders[id]), nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) List(filter repository.OrderFilter) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(order *entity.ProductionOrder, expectedVersion int64) error {
	if lot.IsBatchShapedID(order.ID) {
		return domain.ErrInvalidInput
	}
	stored, ok := r.orders[order.ID]
	if !ok || stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	cp := copyOrder(order)
	cp.Version = expectedVersion + 1
	r.orders[order.ID] = cp
	order.Version = cp.Version
	return nil
}

type fakeStockRepo struct {
	records map[string]*entity.FinishedProductStock
	// failDelete / failCreate simulan un fallo de BD a mitad de transacción.
	failDelete bool
	failCreate bool
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[string]*entity.FinishedProductStock)}
}

var _ repository.FinishedStockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) CreateBatch(records []*entity.FinishedProductStock) error {
	if r.failCreate {
		return errStockRoto
	}
	for _, rec := range records {
		cp := *rec
		r.records[rec.ID] = &cp
	}
	return nil
}

func (r *fakeStockRepo) GetByID(id string) (*entity.FinishedProductStock, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeStockRepo) ListByOrder(orderID string) ([]*entity.FinishedProductStock, error) {
	var out []*entity.FinishedProductStock
	for _, rec := range r.records {
		if rec.OrderID == orderID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) List(filter repository.StockFilter) ([]*entity.FinishedProductStock, error) {
	var out []*entity.FinishedProductStock
	for _, rec := range r.records {
		if filter.ProductID != "" && rec.ProductID != filter.ProductID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStockRepo) DeleteByOrder(orderID string) (int, error) {
	if r.failDelete {
		return 0, errStockRoto
	}
	removed := 0
	for id, rec := range r.records {
		if rec.OrderID == orderID {
			delete(r.records, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeStockRepo) UpdateStatus(id, status string) error {
	rec, ok := r.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	return nil
}

// fakeTxRunner ejecuta fn contra los fakes y, si falla, restaura el snapshot
// previo de ambos stores (rollback simulado).
type fakeTxRunner struct {
	orders *fakeOrderRepo
	stock  *fakeStockRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.FinishedStockRepository,
) error) error {
	ordersSnap := make(map[string]*entity.ProductionOrder, len(tx.orders.orders))
	for id, o := range tx.orders.orders {
		ordersSnap[id] = copyOrder(o)
	}
	stockSnap := make(map[string]*entity.FinishedProductStock, len(tx.stock.records))
	for id, rec := range tx.stock.records {
		cp := *rec
		stockSnap[id] = &cp
	}

	if err := fn(tx.orders, tx.stock); err != nil {
		tx.orders.orders = ordersSnap
		tx.stock.records = stockSnap
		return err
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.CatalogProduct
}

var _ repository.CatalogProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) GetProduct(id string) (*entity.CatalogProduct, error) {
	return r.products[id], nil
}

type fakeMaterialRepo struct {
	materials map[string]*entity.CatalogMaterial
}

var _ repository.CatalogMaterialRepository = (*fakeMaterialRepo)(nil)

func (r *fakeMaterialRepo) GetMaterial(id string) (*entity.CatalogMaterial, error) {
	return r.materials[id], nil
}
