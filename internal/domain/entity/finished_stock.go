package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de producto terminado.
const (
	StockStatusAvailable = "available"
	StockStatusExported  = "exported"
)

// FinishedProductStock una unidad de stock de producto terminado por
// (OP, color, talla), creada al completar la orden. No se divide ni se
// fusiona después de creada; solo el revert completed→packing la elimina.
type FinishedProductStock struct {
	ID        string
	ProductID string
	OrderID   string // OP de origen
	Warehouse string
	Quantity  int
	Color     string
	Size      string
	Cost      decimal.Decimal // snapshot al completar, no se recalcula
	Price     decimal.Decimal
	Status    string // available, exported
	CreatedAt time.Time
}
