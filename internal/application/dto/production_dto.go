package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Confeccion-api/internal/domain/cutting"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
)

// CreateOrderRequest alta de una OP (draft o planned).
type CreateOrderRequest struct {
	LotNumber       string                   `json:"lot_number"`
	ProductID       string                   `json:"product_id"`
	TechPackVersion int                      `json:"tech_pack_version"`
	Warehouse       string                   `json:"warehouse"`
	Status          string                   `json:"status"` // draft | planned (vacío = planned)
	Items           []entity.OrderItem       `json:"items"`
	CostUnit        decimal.Decimal          `json:"cost_unit"`
	PriceUnit       decimal.Decimal          `json:"price_unit"`
	PlannedMatrix   []entity.MatrixRatio     `json:"planned_matrix"`
	PlannedLayers   []entity.LayerDefinition `json:"planned_layers"`
	CutterName      string                   `json:"cutter_name"`
}

// SubmitCuttingJobRequest un taco candidato. AuthorizedBy vacío = envío normal;
// no vacío = commit autorizado de sobreproducción en la misma llamada.
type SubmitCuttingJobRequest struct {
	Matrix       []entity.MatrixRatio     `json:"matrix"`
	Layers       []entity.LayerDefinition `json:"layers"`
	AuthorizedBy string                   `json:"authorized_by"`
}

// SubmitCuttingJobResponse resultado del envío de un taco. Exactamente uno de
// Accepted / RequiresAuthorization es true.
type SubmitCuttingJobResponse struct {
	Accepted              bool                    `json:"accepted"`
	RequiresAuthorization bool                    `json:"requires_authorization"`
	CuttingComplete       bool                    `json:"cutting_complete"`
	CutQuantity           int                     `json:"cut_quantity"`
	QuantityTotal         int                     `json:"quantity_total"`
	ExceedingPairs        []cutting.ExceedingPair `json:"exceeding_pairs,omitempty"`
}

// SaveRevisionRequest datos de la etapa de revisión.
type SaveRevisionRequest struct {
	ReviewerName     string `json:"reviewer_name"`
	QuantityApproved int    `json:"quantity_approved"`
	DefectCount      int    `json:"defect_count"`
	Notes            string `json:"notes"`
}

// SavePackingRequest datos de la etapa de empaque. Items es opcional: si viene
// vacío, la materialización de stock usa el desglose de la OP.
type SavePackingRequest struct {
	PackerName string             `json:"packer_name"`
	Items      []entity.OrderItem `json:"items"`
}

// OrderResponse representación HTTP de una OP.
type OrderResponse struct {
	ID              string                  `json:"id"`
	LotNumber       string                  `json:"lot_number"`
	ProductID       string                  `json:"product_id"`
	ProductName     string                  `json:"product_name"`
	TechPackVersion int                     `json:"tech_pack_version"`
	Warehouse       string                  `json:"warehouse"`
	Status          string                  `json:"status"`
	QuantityTotal   int                     `json:"quantity_total"`
	CutQuantity     int                     `json:"cut_quantity"`
	CuttingComplete bool                    `json:"cutting_complete"`
	Items           []entity.OrderItem      `json:"items"`
	CostUnit        decimal.Decimal         `json:"cost_unit"`
	PriceUnit       decimal.Decimal         `json:"price_unit"`
	CuttingDetails  *entity.CuttingDetails  `json:"cutting_details,omitempty"`
	RevisionDetails *entity.RevisionDetails `json:"revision_details,omitempty"`
	PackingDetails  *entity.PackingDetails  `json:"packing_details,omitempty"`
	Events          []entity.OrderEvent     `json:"events"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ToOrderResponse mapea la entidad a su representación HTTP.
func ToOrderResponse(o *entity.ProductionOrder) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:              o.ID,
		LotNumber:       o.LotNumber,
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		TechPackVersion: o.TechPackVersion,
		Warehouse:       o.Warehouse,
		Status:          o.Status,
		QuantityTotal:   o.QuantityTotal,
		CutQuantity:     o.CutQuantity(),
		CuttingComplete: o.CuttingComplete(),
		Items:           o.Items,
		CostUnit:        o.CostUnit,
		PriceUnit:       o.PriceUnit,
		CuttingDetails:  o.CuttingDetails,
		RevisionDetails: o.RevisionDetails,
		PackingDetails:  o.PackingDetails,
		Events:          o.Events,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// BatchResponse vista virtual de un lote (solo lectura, nunca persistible).
type BatchResponse struct {
	Key           string              `json:"key"`
	QuantityTotal int                 `json:"quantity_total"`
	Editable      bool                `json:"editable"`
	Items         []entity.OrderItem  `json:"items"`
	Events        []entity.OrderEvent `json:"events"`
	Orders        []*OrderResponse    `json:"orders"`
}

// StockResponse representación HTTP de una fila de producto terminado.
type StockResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	OrderID   string          `json:"order_id"`
	Warehouse string          `json:"warehouse"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToStockResponse mapea la entidad de stock a su representación HTTP.
func ToStockResponse(s *entity.FinishedProductStock) *StockResponse {
	if s == nil {
		return nil
	}
	return &StockResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		OrderID:   s.OrderID,
		Warehouse: s.Warehouse,
		Quantity:  s.Quantity,
		Color:     s.Color,
		Size:      s.Size,
		Cost:      s.Cost,
		Price:     s.Price,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
