package repository

import "github.com/jhoicas/Confeccion-api/internal/domain/entity"

// Puertos de solo lectura hacia el catálogo (colaborador externo: productos,
// fichas técnicas, materiales, terceros). Este núcleo nunca escribe en ellos.

// CatalogProductRepository consulta productos y sus fichas técnicas.
type CatalogProductRepository interface {
	GetProduct(id string) (*entity.CatalogProduct, error)
}

// CatalogMaterialRepository consulta materiales y su stock de insumos actual.
type CatalogMaterialRepository interface {
	GetMaterial(id string) (*entity.CatalogMaterial, error)
}

// PartnerRepository consulta terceros, opcionalmente filtrados por tipo.
type PartnerRepository interface {
	ListPartners(partnerType string) ([]*entity.Partner, error)
}
