package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confeccion-api/internal/application/auth"
	"github.com/jhoicas/Confeccion-api/internal/application/production"
	"github.com/jhoicas/Confeccion-api/internal/domain/entity"
	"github.com/jhoicas/Confeccion-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC         *production.OrderUseCase
	CuttingUC       *production.CuttingUseCase
	LifecycleUC     *production.LifecycleUseCase
	StockUC         *production.StockUseCase
	ConsolidationUC *production.ConsolidationUseCase
	PartnerRepo     repository.PartnerRepository
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	productionHandler := NewProductionHandler(deps.OrderUC, deps.CuttingUC, deps.LifecycleUC)
	stockHandler := NewStockHandler(deps.StockUC, deps.LifecycleUC)
	consolidationHandler := NewConsolidationHandler(deps.ConsolidationUC, deps.PartnerRepo)

	// Órdenes de producción (lectura: cualquier rol autenticado)
	orders := protected.Group("/production/orders")
	orders.Get("/", productionHandler.List)
	orders.Get("/:id", productionHandler.GetByID)

	// Mutaciones de producción: admin y cortador
	cutRoles := RequireRole(entity.RoleAdmin, entity.RoleCortador)
	orders.Post("/", cutRoles, productionHandler.Create)
	orders.Post("/:id/cutting/jobs", cutRoles, productionHandler.SubmitCuttingJob)
	orders.Post("/:id/cutting/restart", cutRoles, productionHandler.RestartCutting)
	orders.Post("/:id/advance-sewing", cutRoles, productionHandler.AdvanceToSewing)
	orders.Put("/:id/revision", cutRoles, productionHandler.SaveRevision)
	orders.Post("/:id/cancel", RequireRole(entity.RoleAdmin), productionHandler.Cancel)

	// Empaque y stock: admin y empacador
	packRoles := RequireRole(entity.RoleAdmin, entity.RoleEmpacador)
	orders.Put("/:id/packing", packRoles, productionHandler.SavePacking)
	orders.Post("/:id/revision/revert", packRoles, productionHandler.RevertPacking)

	// Vista por lotes y consolidación (lectura)
	protected.Get("/production/batches", productionHandler.Batches)
	protected.Post("/production/consolidation", consolidationHandler.Consolidate)
	protected.Get("/partners", consolidationHandler.ListPartners)

	// Stock de producto terminado
	stock := protected.Group("/stock")
	stock.Get("/", stockHandler.List)
	stock.Put("/:id/export", packRoles, stockHandler.MarkExported)
	stock.Post("/:id/revert-to-packing", packRoles, stockHandler.RevertToPacking)
}
