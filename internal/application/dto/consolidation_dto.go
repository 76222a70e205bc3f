package dto

import "github.com/shopspring/decimal"

// Estados de un requerimiento consolidado.
const (
	RequirementStatusOK       = "ok"
	RequirementStatusCritical = "critical"
)

// ConsolidationRequest conjunto de OPs a consolidar (convención del caller:
// OPs que aún no pasaron de confección).
type ConsolidationRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// ConsolidatedRequirement requerimiento de material neto contra stock actual.
// Efímero: se recalcula por completo en cada invocación.
type ConsolidatedRequirement struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	RequiredQty  decimal.Decimal `json:"required_qty"`
	StockQty     decimal.Decimal `json:"stock_qty"`
	Status       string          `json:"status"` // ok | critical
}
