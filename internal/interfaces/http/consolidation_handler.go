package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/application/production"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// ConsolidationHandler maneja la consolidación de materiales y la consulta de
// terceros del catálogo.
type ConsolidationHandler struct {
	consolidation *production.ConsolidationUseCase
	partnerRepo   repository.PartnerRepository
}

// NewConsolidationHandler construye el handler.
func NewConsolidationHandler(consolidation *production.ConsolidationUseCase, partnerRepo repository.PartnerRepository) *ConsolidationHandler {
	return &ConsolidationHandler{consolidation: consolidation, partnerRepo: partnerRepo}
}

// Consolidate godoc
// @Summary      Consolidar requerimientos de material
// @Description  Suma la BOM de lo que falta por cortar en las OPs seleccionadas
// y la neta contra el stock de insumos. Resultado efímero: se recalcula
// completo en cada llamada.
// @Tags         consolidation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsolidationRequest  true  "order_ids"
// @Success      200   {array}   dto.ConsolidatedRequirement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/consolidation [post]
func (h *ConsolidationHandler) Consolidate(c *fiber.Ctx) error {
	var in dto.ConsolidationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	requirements, err := h.consolidation.Consolidate(in.OrderIDs)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(requirements), "requirements": requirements})
}

// ListPartners godoc
// @Summary      Listar terceros del catálogo
// @Tags         consolidation
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "supplier | workshop | customer"
// @Success      200  {array}  entity.Partner
// @Router       /api/partners [get]
func (h *ConsolidationHandler) ListPartners(c *fiber.Ctx) error {
	partners, err := h.partnerRepo.ListPartners(c.Query("type"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(partners), "partners": partners})
}
