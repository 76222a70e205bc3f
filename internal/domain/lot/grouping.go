package lot

import (
	"sort"
	"strings"

	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
)

// Agrupación por lote: proyección pura y derivada sobre el listado de OPs.
// Un "batch" nunca se persiste; se recalcula en cada lectura.

// BatchKeyPrefix prefijo que marca un identificador con forma de batch.
// El repositorio de OPs rechaza cualquier save dirigido a un id con este prefijo.
const BatchKeyPrefix = "batch:"

// Batch agregado virtual de solo lectura: la unión de las OPs hermanas que
// comparten prefijo de lote (lotes de modelo mixto).
type Batch struct {
	Key           string
	Orders        []*entity.ProductionOrder
	QuantityTotal int
	Items         []entity.OrderItem
	Events        []entity.OrderEvent
	Editable      bool
}

// BatchKey deriva la llave de batch de un número de lote: con 3+ tokens
// separados por "-" son los dos primeros unidos por "-"; si no, el lote completo.
// Ej: "2025-010-A" -> "2025-010"; "2025-010" -> "2025-010".
func BatchKey(lotNumber string) string {
	tokens := strings.Split(lotNumber, "-")
	if len(tokens) >= 3 {
		return tokens[0] + "-" + tokens[1]
	}
	return lotNumber
}

// Group agrupa las OPs visibles por llave de batch.
func Group(orders []*entity.ProductionOrder) map[string][]*entity.ProductionOrder {
	groups := make(map[string][]*entity.ProductionOrder)
	for _, o := range orders {
		key := BatchKey(o.LotNumber)
		groups[key] = append(groups[key], o)
	}
	return groups
}

// Merge construye la vista virtual de un batch: cantidades sumadas, items
// concatenados y eventos concatenados en orden cronológico. El resultado es de
// solo lectura y no debe persistirse nunca a través del repositorio.
func Merge(key string, orders []*entity.ProductionOrder) *Batch {
	b := &Batch{Key: key, Orders: orders, Editable: Editable(orders)}
	for _, o := range orders {
		b.QuantityTotal += o.QuantityTotal
		b.Items = append(b.Items, o.Items...)
		b.Events = append(b.Events, o.Events...)
	}
	sort.SliceStable(b.Events, func(i, j int) bool {
		return b.Events[i].Date.Before(b.Events[j].Date)
	})
	return b
}

// Editable un batch es editable como un todo solo si todas sus OPs siguen en
// draft o planned.
func Editable(orders []*entity.ProductionOrder) bool {
	if len(orders) == 0 {
		return false
	}
	for _, o := range orders {
		if o.Status != entity.StatusDraft && o.Status != entity.StatusPlanned {
			return false
		}
	}
	return true
}

// IsBatchShapedID indica si un identificador tiene forma de batch (no persistible).
func IsBatchShapedID(id string) bool {
	return strings.HasPrefix(id, BatchKeyPrefix)
}
