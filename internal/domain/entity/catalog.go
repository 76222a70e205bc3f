package entity

import "github.com/shopspring/decimal"

// Modelos de lectura del catálogo (colaborador externo: productos, fichas
// técnicas, materiales, terceros). Este núcleo solo los consulta, nunca los muta.

// BOMLine consumo de material por pieza de una ficha técnica.
type BOMLine struct {
	MaterialID    string          `json:"material_id"`
	UsagePerPiece decimal.Decimal `json:"usage_per_piece"`
	WasteMargin   decimal.Decimal `json:"waste_margin"` // fracción, ej. 0.10 = 10%
}

// TechPack versión de ficha técnica de un producto.
type TechPack struct {
	Version        int             `json:"version"`
	ActiveSizes    []string        `json:"active_sizes"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	Materials      []BOMLine       `json:"materials"`
}

// CatalogProduct producto del catálogo con sus fichas técnicas.
type CatalogProduct struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Reference string     `json:"reference"`
	Sizes     []string   `json:"sizes"`
	Colors    []string   `json:"colors"`
	TechPacks []TechPack `json:"tech_packs"`
}

// TechPackByVersion devuelve la ficha técnica que coincide con la versión, o nil.
func (p *CatalogProduct) TechPackByVersion(version int) *TechPack {
	for i := range p.TechPacks {
		if p.TechPacks[i].Version == version {
			return &p.TechPacks[i]
		}
	}
	return nil
}

// CatalogMaterial material con su stock actual en bodega de insumos.
type CatalogMaterial struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"` // m, kg, und...
	CurrentStock decimal.Decimal `json:"current_stock"`
	CostUnit     decimal.Decimal `json:"cost_unit"`
	SupplierID   string          `json:"supplier_id"`
}

// Tipos de tercero del catálogo.
const (
	PartnerTypeSupplier = "supplier"
	PartnerTypeWorkshop = "workshop"
	PartnerTypeCustomer = "customer"
)

// Partner tercero del catálogo (proveedor, taller satélite, cliente).
type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
