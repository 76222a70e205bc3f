package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de producción (OP).
// El flujo es unidireccional hacia adelante; los "revert" existen solo para
// corregir errores de captura de etapa.
const (
	StatusDraft          = "draft"
	StatusPlanned        = "planned"
	StatusCutting        = "cutting"
	StatusSewing         = "sewing"
	StatusQualityControl = "quality_control"
	StatusPacking        = "packing"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
)

// Tipos de evento del log de auditoría de la OP.
const (
	EventTypeInfo          = "info"
	EventTypeStatus        = "status"
	EventTypeCutting       = "cutting"
	EventTypeAuthorization = "authorization"
	EventTypeRevert        = "revert"
)

// OrderItem desglose de demanda por (color, talla). Es la fuente autoritativa:
// la suma de Quantity de todos los items debe ser siempre igual a QuantityTotal.
type OrderItem struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// MatrixRatio piezas por capa para una talla en la mesa de corte (tizada).
type MatrixRatio struct {
	Size  string `json:"size"`
	Ratio int    `json:"ratio"`
}

// LayerDefinition capas de tela tendidas para un color.
type LayerDefinition struct {
	Color  string `json:"color"`
	Layers int    `json:"layers"`
}

// CuttingJob una ejecución física de corte ("taco"). Inmutable una vez anexada
// a CuttingDetails.Jobs. TotalPieces siempre se recalcula como
// (Σ ratio) × (Σ capas); nunca se acepta del caller.
type CuttingJob struct {
	ID          string            `json:"id"`
	Matrix      []MatrixRatio     `json:"matrix"`
	Layers      []LayerDefinition `json:"layers"`
	TotalPieces int               `json:"total_pieces"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatedBy   string            `json:"created_by"`
}

// CuttingDetails plan de corte declarado y tacos ejecutados.
type CuttingDetails struct {
	PlannedMatrix []MatrixRatio     `json:"planned_matrix"`
	PlannedLayers []LayerDefinition `json:"planned_layers"`
	CutterName    string            `json:"cutter_name"`
	Jobs          []CuttingJob      `json:"jobs"`
	IsFinalized   bool              `json:"is_finalized"`
}

// RevisionDetails datos de la etapa de revisión/calidad.
type RevisionDetails struct {
	ReviewerName     string    `json:"reviewer_name"`
	QuantityApproved int       `json:"quantity_approved"`
	DefectCount      int       `json:"defect_count"`
	Notes            string    `json:"notes"`
	IsFinalized      bool      `json:"is_finalized"`
	ReviewedDate     time.Time `json:"reviewed_date"`
}

// PackingDetails datos de la etapa de empaque. Items es el desglose empacado
// por (color, talla); si está vacío, la materialización de stock usa los items
// de la OP.
type PackingDetails struct {
	PackerName     string      `json:"packer_name"`
	Items          []OrderItem `json:"items"`
	QuantityPacked int         `json:"quantity_packed"`
	IsFinalized    bool        `json:"is_finalized"`
	PackedDate     time.Time   `json:"packed_date"`
}

// OrderEvent entrada del log de auditoría (append-only, cronológico).
type OrderEvent struct {
	Date        time.Time `json:"date"`
	User        string    `json:"user"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
}

// ProductionOrder raíz del agregado: una orden de producción con su lote,
// desglose de demanda, detalle por etapa y log de eventos.
// Version soporta concurrencia optimista (single-writer por OP).
type ProductionOrder struct {
	ID              string
	LotNumber       string // formato YYYY-SEQ o YYYY-SEQ-SUFIJO para lotes mixtos
	ProductID       string
	ProductName     string
	TechPackVersion int
	Warehouse       string
	Status          string
	QuantityTotal   int
	Items           []OrderItem
	CostUnit        decimal.Decimal // snapshot de costo unitario desde la ficha técnica
	PriceUnit       decimal.Decimal
	CuttingDetails  *CuttingDetails
	RevisionDetails *RevisionDetails
	PackingDetails  *PackingDetails
	Events          []OrderEvent
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

// TotalItems suma las cantidades del desglose de demanda.
func (o *ProductionOrder) TotalItems() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

// CutQuantity piezas cortadas acumuladas (suma de TotalPieces de todos los tacos).
func (o *ProductionOrder) CutQuantity() int {
	if o.CuttingDetails == nil {
		return 0
	}
	total := 0
	for _, j := range o.CuttingDetails.Jobs {
		total += j.TotalPieces
	}
	return total
}

// TargetFor cantidad declarada para un par (color, talla); 0 si no existe.
func (o *ProductionOrder) TargetFor(color, size string) int {
	for _, it := range o.Items {
		if it.Color == color && it.Size == size {
			return it.Quantity
		}
	}
	return 0
}

// RaiseItem sube la cantidad de un par (color, talla) en delta, insertando la
// fila si no existía. Solo crece: es el único camino por el que QuantityTotal
// puede aumentar (autorización de sobreproducción).
func (o *ProductionOrder) RaiseItem(color, size string, delta int) {
	for i := range o.Items {
		if o.Items[i].Color == color && o.Items[i].Size == size {
			o.Items[i].Quantity += delta
			return
		}
	}
	o.Items = append(o.Items, OrderItem{Color: color, Size: size, Quantity: delta})
}

// AppendEvent anexa una entrada al log de auditoría.
func (o *ProductionOrder) AppendEvent(user, action, description, eventType string, at time.Time) {
	o.Events = append(o.Events, OrderEvent{
		Date:        at,
		User:        user,
		Action:      action,
		Description: description,
		Type:        eventType,
	})
}

// IsTerminal indica si la OP está en un estado absorbente (completed o cancelled).
func (o *ProductionOrder) IsTerminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// CuttingComplete indica si el acumulado cortado alcanzó la meta. Informativo:
// no cambia el estado, solo el bucket de filtrado en la UI.
func (o *ProductionOrder) CuttingComplete() bool {
	return o.QuantityTotal > 0 && o.CutQuantity() >= o.QuantityTotal
}

// PastCutting indica si la OP ya avanzó más allá del corte (no se puede reiniciar el plan).
func (o *ProductionOrder) PastCutting() bool {
	switch o.Status {
	case StatusSewing, StatusQualityControl, StatusPacking, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
