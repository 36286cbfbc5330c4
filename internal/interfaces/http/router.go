package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cs-portfolio/internal/application/analytics"
	"github.com/jhoicas/cs-portfolio/internal/application/auth"
	"github.com/jhoicas/cs-portfolio/internal/application/customers"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Customers    *customers.Manager
	EditSessions *customers.EditSessions
	ExportUC     *customers.ExportUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Customers: las rutas fijas van antes de /:id.
	list := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.Customers, deps.EditSessions, deps.ExportUC)
	list.Get("/", customerHandler.List)
	list.Post("/", customerHandler.Create)
	list.Post("/reload", customerHandler.Reload)
	list.Get("/export.xlsx", customerHandler.ExportXLSX)
	list.Get("/export.pdf", dashboardHandler.ExportPDF)
	list.Get("/editing", customerHandler.CurrentEdit)
	list.Post("/editing", customerHandler.SaveEdit)
	list.Delete("/editing", customerHandler.CancelEdit)
	list.Post("/editing/:id", customerHandler.BeginEdit)
	list.Get("/:id", customerHandler.GetByID)
	list.Put("/:id", customerHandler.Update)
	list.Delete("/:id", customerHandler.Delete)
}
