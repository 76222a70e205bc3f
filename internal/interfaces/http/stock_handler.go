package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confeccion-api/internal/application/dto"
	"github.com/jhoicas/Confeccion-api/internal/application/production"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// StockHandler maneja el stock de producto terminado.
type StockHandler struct {
	stock     *production.StockUseCase
	lifecycle *production.LifecycleUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *production.StockUseCase, lifecycle *production.LifecycleUseCase) *StockHandler {
	return &StockHandler{stock: stock, lifecycle: lifecycle}
}

// List godoc
// @Summary      Listar stock de producto terminado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        status      query  string  false  "available | exported"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	records, err := h.stock.List(repository.StockFilter{
		ProductID: c.Query("product_id"),
		Status:    c.Query("status"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"page": page.Response(len(records)), "stock": records})
}

// MarkExported godoc
// @Summary      Marcar fila de stock como exportada
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la fila de stock"
// @Success      200  {object}  dto.StockResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/export [put]
func (h *StockHandler) MarkExported(c *fiber.Ctx) error {
	stock, err := h.stock.MarkExported(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(stock)
}

// RevertToPacking godoc
// @Summary      Revertir completado de la OP dueña de esta fila de stock
// @Description  Elimina todo el stock creado por el completado de la OP y la
// reabre en empaque. Atómico: si la eliminación falla, la OP sigue completada.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la fila de stock"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/revert-to-packing [post]
func (h *StockHandler) RevertToPacking(c *fiber.Ctx) error {
	order, err := h.lifecycle.RevertCompletedStockToPacking(c.Context(), c.Params("id"), GetUserName(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(order)
}
