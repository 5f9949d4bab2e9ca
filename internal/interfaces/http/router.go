package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/clientes-pro/internal/application/auth"
	"github.com/tu-usuario/clientes-pro/internal/application/customers"
	"github.com/tu-usuario/clientes-pro/internal/application/imports"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *customers.CustomerUseCase
	ImportUC   *imports.ImportUseCase
	ReportUC   *customers.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
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

	// Customers (protegido)
	customersGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Post("/validate", customerHandler.Validate)

	// Reporte PDF (solo admin). Registrado antes de /:id para que "report"
	// no se interprete como un ID.
	reportHandler := NewReportHandler(deps.ReportUC)
	customersGroup.Get("/report", RequireRole(entity.RoleAdmin), reportHandler.Directory)

	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", customerHandler.Delete)

	// Importación masiva (protegido)
	importsGroup := protected.Group("/imports")
	importHandler := NewImportHandler(deps.ImportUC)
	importsGroup.Post("/", importHandler.Import)
	importsGroup.Post("/preview", importHandler.Preview)
}
