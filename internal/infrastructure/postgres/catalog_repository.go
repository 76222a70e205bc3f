package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

var (
	_ repository.CatalogProductRepository  = (*CatalogRepo)(nil)
	_ repository.CatalogMaterialRepository = (*CatalogRepo)(nil)
	_ repository.PartnerRepository         = (*CatalogRepo)(nil)
)

// CatalogRepo adaptador de solo lectura sobre las tablas del catálogo
// (productos, fichas técnicas, materiales, terceros). El catálogo es de otro
// subsistema: este núcleo nunca escribe en él.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetProduct obtiene un producto del catálogo con sus fichas técnicas; nil si no existe.
func (r *CatalogRepo) GetProduct(id string) (*entity.CatalogProduct, error) {
	query := `
		SELECT id, name, reference, sizes, colors, tech_packs
		FROM catalog_products WHERE id = $1`
	var p entity.CatalogProduct
	var sizes, colors, techPacks []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Reference, &sizes, &colors, &techPacks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog product: %w", err)
	}
	if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
		return nil, fmt.Errorf("unmarshal sizes: %w", err)
	}
	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("unmarshal colors: %w", err)
	}
	if err := json.Unmarshal(techPacks, &p.TechPacks); err != nil {
		return nil, fmt.Errorf("unmarshal tech packs: %w", err)
	}
	return &p, nil
}

// GetMaterial obtiene un material con su stock de insumos actual; nil si no existe.
func (r *CatalogRepo) GetMaterial(id string) (*entity.CatalogMaterial, error) {
	query := `
		SELECT id, name, unit, current_stock, cost_unit, COALESCE(supplier_id, '')
		FROM catalog_materials WHERE id = $1`
	var m entity.CatalogMaterial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Unit, &m.CurrentStock, &m.CostUnit, &m.SupplierID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog material: %w", err)
	}
	return &m, nil
}

// ListPartners devuelve los terceros, filtrados por tipo si se indica.
func (r *CatalogRepo) ListPartners(partnerType string) ([]*entity.Partner, error) {
	query := `
		SELECT id, name, type
		FROM catalog_partners
		WHERE ($1 = '' OR type = $1)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, partnerType)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var out []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Type); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
