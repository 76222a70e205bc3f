package production

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// ConsolidationUseCase suma los requerimientos de material de un conjunto de
// OPs en curso y los neta contra el stock de insumos actual. El resultado es
// efímero: se recalcula por completo en cada invocación, sin caché, porque
// stock y planes cambian entre llamadas.
type ConsolidationUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.CatalogProductRepository
	materialRepo repository.CatalogMaterialRepository
}

// NewConsolidationUseCase construye el caso de uso.
func NewConsolidationUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.CatalogProductRepository,
	materialRepo repository.CatalogMaterialRepository,
) *ConsolidationUseCase {
	return &ConsolidationUseCase{orderRepo: orderRepo, productRepo: productRepo, materialRepo: materialRepo}
}

// Consolidate para cada OP seleccionada calcula lo que falta por cortar
// (max(0, meta − cortado)) y explota la BOM de su ficha técnica:
// needed += consumoPorPieza × faltante × (1 + margenDesperdicio).
// Clasifica cada material como critical cuando lo requerido supera el stock.
// Solo participan OPs que aún no pasaron de confección; el resto se ignora.
func (uc *ConsolidationUseCase) Consolidate(orderIDs []string) ([]*dto.ConsolidatedRequirement, error) {
	if len(orderIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	one := decimal.NewFromInt(1)
	required := make(map[string]decimal.Decimal)
	var materialOrder []string // orden de primera aparición, para salida estable

	// La selección es un conjunto: un id repetido cuenta una sola vez.
	seen := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		order, err := uc.orderRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		switch order.Status {
		case entity.StatusDraft, entity.StatusPlanned, entity.StatusCutting, entity.StatusSewing:
		default:
			continue
		}

		remaining := order.QuantityTotal - order.CutQuantity()
		if remaining <= 0 {
			continue
		}

		product, err := uc.productRepo.GetProduct(order.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		techPack := product.TechPackByVersion(order.TechPackVersion)
		if techPack == nil {
			return nil, domain.ErrNotFound
		}

		remainingDec := decimal.NewFromInt(int64(remaining))
		for _, line := range techPack.Materials {
			needed := line.UsagePerPiece.Mul(remainingDec).Mul(one.Add(line.WasteMargin))
			if _, seen := required[line.MaterialID]; !seen {
				materialOrder = append(materialOrder, line.MaterialID)
			}
			required[line.MaterialID] = required[line.MaterialID].Add(needed)
		}
	}

	out := make([]*dto.ConsolidatedRequirement, 0, len(materialOrder))
	for _, materialID := range materialOrder {
		material, err := uc.materialRepo.GetMaterial(materialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		status := dto.RequirementStatusOK
		if required[materialID].GreaterThan(material.CurrentStock) {
			status = dto.RequirementStatusCritical
		}
		out = append(out, &dto.ConsolidatedRequirement{
			MaterialID:   materialID,
			MaterialName: material.Name,
			Unit:         material.Unit,
			RequiredQty:  required[materialID],
			StockQty:     material.CurrentStock,
			Status:       status,
		})
	}
	return out, nil
}
