package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/scan"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC *usecase.CompanyUseCase
	ItemUC    *usecase.ItemUseCase
	LedgerUC  *ledger.LedgerUseCase
	ScanUC    *scan.ScanUseCase
	ExportUC  *export.ExportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEditor, entity.RoleSubmitter)
	adminOrEditor := RequireRole(entity.RoleAdmin, entity.RoleEditor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Items (protegido). La edición directa salta el ledger: solo admin.
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	exportHandler := NewExportHandler(deps.ExportUC)
	items.Get("/", anyRole, itemHandler.List)
	items.Get("/low-stock", anyRole, itemHandler.LowStock)
	items.Get("/export.csv", anyRole, exportHandler.CSV)
	items.Get("/export.pdf", anyRole, exportHandler.PDF)
	items.Post("/", adminOrEditor, itemHandler.Create)
	items.Get("/:id", anyRole, itemHandler.GetByID)
	items.Put("/:id", adminOnly, itemHandler.Update)

	// Shipments (protegido). El POST decide según el rol: aplicar o solicitar.
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.LedgerUC)
	shipments.Post("/", anyRole, shipmentHandler.Log)
	shipments.Get("/", anyRole, shipmentHandler.List)
	shipments.Get("/check-id", anyRole, shipmentHandler.CheckID)
	shipments.Get("/:id", anyRole, shipmentHandler.GetByID)
	shipments.Put("/:id", adminOrEditor, shipmentHandler.Edit)
	shipments.Delete("/:id", adminOrEditor, shipmentHandler.Delete)

	// Solicitudes pendientes (protegido, solo quien puede aplicar).
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.LedgerUC)
	requests.Get("/", adminOrEditor, requestHandler.ListPending)
	requests.Post("/:id/approve", adminOrEditor, requestHandler.Approve)
	requests.Post("/:id/reject", adminOrEditor, requestHandler.Reject)

	// Escaneo de documentos (protegido)
	scanHandler := NewScanHandler(deps.ScanUC)
	protected.Post("/scan", anyRole, scanHandler.Scan)
}
