package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/auth"
	"github.com/jhoicas/stockrest/internal/application/catalog"
	"github.com/jhoicas/stockrest/internal/application/report"
	"github.com/jhoicas/stockrest/internal/application/state"
	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	State     *state.Container
	Catalog   *catalog.Service
	Reports   *report.Service
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.State)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Planilla de conteo: admin y staff
	stock := protected.Group("/stock", RequireRole(entity.RoleAdmin, entity.RoleStaff))
	stockHandler := NewStockHandler(deps.Catalog)
	stock.Get("/sheet", stockHandler.Sheet)
	stock.Post("/batch", stockHandler.SaveBatch)

	// Resto: solo admin. Las rutas registradas antes no pasan por este middleware.
	admin := protected.Group("/", RequireRole(entity.RoleAdmin))

	dashboardHandler := NewDashboardHandler(deps.Catalog)
	admin.Get("/dashboard/summary", dashboardHandler.GetSummary)
	admin.Get("/dashboard/metrics/:metric", dashboardHandler.GetMetric)

	itemHandler := NewItemHandler(deps.State, deps.Catalog, deps.Reports)
	admin.Get("/items", itemHandler.List)
	admin.Post("/items", itemHandler.Create)
	admin.Get("/items/export", itemHandler.Export)
	admin.Get("/items/:id", itemHandler.GetByID)
	admin.Put("/items/:id", itemHandler.Update)
	admin.Delete("/items/:id", itemHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.State, deps.Catalog)
	admin.Get("/categories", categoryHandler.List)
	admin.Post("/categories", categoryHandler.Create)
	admin.Delete("/categories/:id", categoryHandler.Delete)

	userHandler := NewUserHandler(deps.State, deps.Catalog)
	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Put("/users/:id", userHandler.Update)

	settingsHandler := NewSettingsHandler(deps.Catalog)
	admin.Get("/settings", settingsHandler.Get)
	admin.Put("/settings", settingsHandler.Update)
	admin.Get("/logs", settingsHandler.Logs)
}
