package production

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
)

// MaterializeStock convierte el desglose empacado de una OP completada en una
// fila de producto terminado por (color, talla). Usa PackingDetails.Items y,
// si el empaque no registró desglose fino, cae al desglose de la OP.
// Cantidades copiadas tal cual (sin dividir ni reagrupar); costo y precio son
// el snapshot de la OP. Debe invocarse exactamente una vez, en el borde
// status != completed → completed: el guard de estado del ciclo de vida es lo
// que impide duplicar stock, no esta función.
func MaterializeStock(order *entity.ProductionOrder, at time.Time) []*entity.FinishedProductStock {
	items := order.Items
	if order.PackingDetails != nil && len(order.PackingDetails.Items) > 0 {
		items = order.PackingDetails.Items
	}

	records := make([]*entity.FinishedProductStock, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		records = append(records, &entity.FinishedProductStock{
			ID:        uuid.New().String(),
			ProductID: order.ProductID,
			OrderID:   order.ID,
			Warehouse: order.Warehouse,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
			Cost:      order.CostUnit,
			Price:     order.PriceUnit,
			Status:    entity.StockStatusAvailable,
			CreatedAt: at,
		})
	}
	return records
}
