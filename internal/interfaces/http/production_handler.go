package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/application/production"
	"github.com/jhoicas/Confeccion-api/internal/domain"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// ProductionHandler maneja las peticiones HTTP de órdenes de producción:
// alta, consulta, lotes, corte y transiciones de ciclo de vida.
type ProductionHandler struct {
	orders    *production.OrderUseCase
	cutting   *production.CuttingUseCase
	lifecycle *production.LifecycleUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(
	orders *production.OrderUseCase,
	cutting *production.CuttingUseCase,
	lifecycle *production.LifecycleUseCase,
) *ProductionHandler {
	return &ProductionHandler{orders: orders, cutting: cutting, lifecycle: lifecycle}
}

// domainError mapea errores de dominio a respuestas HTTP. Cubre la taxonomía
// completa del motor; cualquier otro error es 500.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrIllegalTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la orden cambió; recargue e intente de nuevo"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "lote, producto, items por color/talla, plan de corte"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/orders [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orders.Create(in, GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        lot     query  string  false  "Filtrar por prefijo de lote"
// @Param        q       query  string  false  "Búsqueda por lote o producto"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/production/orders [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.OrderFilter{
		Status: c.Query("status"),
		Lot:    c.Query("lot"),
		Query:  c.Query("q"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	orders, err := h.orders.List(filter)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"page": page.Response(len(orders)), "orders": orders})
}

// GetByID godoc
// @Summary      Obtener orden de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la OP"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}

// Batches godoc
// @Summary      Vista agrupada por lote
// @Description  Agrupa las OPs visibles por prefijo de lote (lotes de modelo
// mixto). La vista es derivada y de solo lectura: nunca se persiste.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/production/batches [get]
func (h *ProductionHandler) Batches(c *fiber.Ctx) error {
	batches, err := h.orders.Batches(repository.OrderFilter{
		Status: c.Query("status"),
		Lot:    c.Query("lot"),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(batches), "batches": batches})
}

// SubmitCuttingJob godoc
// @Summary      Registrar taco de corte
// @Description  Valida y comete un taco en una sola llamada. Si el taco excede
// la demanda declarada y no viene authorized_by, responde 200 con
// requires_authorization y los pares excedidos, sin mutar la OP.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la OP"
// @Param        body  body  dto.SubmitCuttingJobRequest  true  "matriz, capas, authorized_by opcional"
// @Success      200   {object}  dto.SubmitCuttingJobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/cutting/jobs [post]
func (h *ProductionHandler) SubmitCuttingJob(c *fiber.Ctx) error {
	var in dto.SubmitCuttingJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.cutting.SubmitJob(c.Params("id"), in, GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// RestartCutting godoc
// @Summary      Reiniciar corte
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la OP"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/cutting/restart [post]
func (h *ProductionHandler) RestartCutting(c *fiber.Ctx) error {
	order, err := h.cutting.RestartCutting(c.Params("id"), GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}

// AdvanceToSewing godoc
// @Summary      Entregar OP a confección
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la OP"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/advance-sewing [post]
func (h *ProductionHandler) AdvanceToSewing(c *fiber.Ctx) error {
	order, err := h.lifecycle.AdvanceToSewing(c.Params("id"), GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}

// SaveRevision godoc
// @Summary      Guardar revisión (cierra revisión y deja la OP en empaque)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la OP"
// @Param        body  body  dto.SaveRevisionRequest  true  "revisor, aprobadas, defectos"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/revision [put]
func (h *ProductionHandler) SaveRevision(c *fiber.Ctx) error {
	var in dto.SaveRevisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.lifecycle.SaveRevision(c.Params("id"), in, GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}

// SavePacking godoc
// @Summary      Cerrar empaque y completar la OP
// @Description  Completa la OP y materializa el stock de producto terminado en
// la misma transacción. Repetir la llamada sobre una OP completada responde
// 409 sin duplicar stock.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la OP"
// @Param        body  body  dto.SavePackingRequest  true  "empacador, desglose empacado opcional"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/packing [put]
func (h *ProductionHandler) SavePacking(c *fiber.Ctx) error {
	var in dto.SavePackingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.lifecycle.SavePacking(c.Context(), c.Params("id"), in, GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}

// RevertPacking godoc
// @Summary      Revertir empaque (reabre la revisión)
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la OP"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/revision/revert [post]
func (h *ProductionHandler) RevertPacking(c *fiber.Ctx) error {
	order, err := h.lifecycle.RevertPackingToRevision(c.Params("id"), GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}

// Cancel godoc
// @Summary      Cancelar OP
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la OP"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production/orders/{id}/cancel [post]
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.lifecycle.Cancel(c.Params("id"), GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}
