package production

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/lot"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// OrderUseCase alta y consulta de órdenes de producción, incluida la vista
// agrupada por lote.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.CatalogProductRepository
	// defaultWarehouse bodega destino cuando el alta no indica una.
	defaultWarehouse string
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, productRepo repository.CatalogProductRepository, defaultWarehouse string) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, productRepo: productRepo, defaultWarehouse: defaultWarehouse}
}

// Create da de alta una OP en draft o planned. El desglose de items es la
// demanda autoritativa: QuantityTotal se deriva de su suma, nunca al revés.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest, user string) (*dto.OrderResponse, error) {
	if strings.TrimSpace(in.LotNumber) == "" || in.ProductID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := 0
	for _, it := range in.Items {
		if it.Color == "" || it.Size == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		total += it.Quantity
	}

	status := in.Status
	switch status {
	case "":
		status = entity.StatusPlanned
	case entity.StatusDraft, entity.StatusPlanned:
	default:
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	techPack := product.TechPackByVersion(in.TechPackVersion)
	if techPack == nil {
		return nil, domain.ErrNotFound
	}
	price := in.PriceUnit
	if price.IsZero() {
		price = techPack.SuggestedPrice
	}
	warehouse := strings.TrimSpace(in.Warehouse)
	if warehouse == "" {
		warehouse = uc.defaultWarehouse
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:              uuid.New().String(),
		LotNumber:       strings.TrimSpace(in.LotNumber),
		ProductID:       product.ID,
		ProductName:     product.Name,
		TechPackVersion: in.TechPackVersion,
		Warehouse:       warehouse,
		Status:          status,
		QuantityTotal:   total,
		Items:           in.Items,
		CostUnit:        in.CostUnit,
		PriceUnit:       price,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}
	if len(in.PlannedMatrix) > 0 || len(in.PlannedLayers) > 0 {
		order.CuttingDetails = &entity.CuttingDetails{
			PlannedMatrix: in.PlannedMatrix,
			PlannedLayers: in.PlannedLayers,
			CutterName:    in.CutterName,
		}
	}
	order.AppendEvent(user, "create", "OP creada para "+product.Name, entity.EventTypeInfo, now)

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// Get devuelve una OP por id.
func (uc *OrderUseCase) Get(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToOrderResponse(order), nil
}

// List devuelve las OPs que pasan el filtro.
func (uc *OrderUseCase) List(filter repository.OrderFilter) ([]*dto.OrderResponse, error) {
	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out, nil
}

// Batches vista virtual agrupada por lote. Derivada y de solo lectura: se
// recalcula en cada llamada y nunca se persiste.
func (uc *OrderUseCase) Batches(filter repository.OrderFilter) ([]*dto.BatchResponse, error) {
	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	groups := lot.Group(orders)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*dto.BatchResponse, 0, len(keys))
	for _, k := range keys {
		b := lot.Merge(k, groups[k])
		resp := &dto.BatchResponse{
			Key:           b.Key,
			QuantityTotal: b.QuantityTotal,
			Editable:      b.Editable,
			Items:         b.Items,
			Events:        b.Events,
		}
		for _, o := range b.Orders {
			resp.Orders = append(resp.Orders, dto.ToOrderResponse(o))
		}
		out = append(out, resp)
	}
	return out, nil
}
