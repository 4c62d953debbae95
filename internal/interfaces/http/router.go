package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/auth"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/inventory"
	"github.com/transportechiro/flota-api/internal/application/usecase"
	"github.com/transportechiro/flota-api/internal/application/workorder"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/infrastructure/pdf"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	FleetUC     *fleet.UseCase
	DriverUC    *usecase.DriverUseCase
	WorkOrderUC *workorder.UseCase
	InventoryUC *inventory.UseCase
	SupplierUC  *usecase.SupplierUseCase
	NoticeUC    *usecase.NoticeUseCase
	TireUC      *usecase.TireUseCase
	DocumentUC  *usecase.DocumentUseCase
	DashboardUC *usecase.DashboardUseCase
	AIUC        *usecase.AIUseCase
	OrderReport *pdf.MarotoOrderReport
	CompanyName string
	JWTSecret   string
	DBPath      string
	BackupDir   string
	Log         *logger.Logger
}

// Router registra las rutas de la API. Solo el login es público; las bajas,
// la aprobación de repuestos, el alta de usuarios y el backup son solo-admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo-admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/register", admin, authHandler.Register)

	// Flota
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.FleetUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/alerts", vehicleHandler.ServiceAlerts)
	vehicles.Get("/cpk", vehicleHandler.CostPerKM)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Put("/:id/odometer", vehicleHandler.UpdateOdometer)
	vehicles.Delete("/:id", admin, vehicleHandler.Delete)

	// Choferes
	drivers := protected.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/", driverHandler.List)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Put("/:id", driverHandler.Update)
	drivers.Delete("/:id", admin, driverHandler.Delete)

	// Combustible
	fuel := protected.Group("/fuel")
	fuelHandler := NewFuelHandler(deps.FleetUC, deps.DriverUC)
	fuel.Post("/", fuelHandler.Create)
	fuel.Get("/", fuelHandler.List)
	fuel.Get("/ranking", fuelHandler.Ranking)

	// Órdenes de trabajo
	orders := protected.Group("/workorders")
	orderHandler := NewWorkOrderHandler(
		deps.WorkOrderUC, deps.FleetUC, deps.DriverUC, deps.InventoryUC,
		deps.OrderReport, deps.CompanyName,
	)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/close", orderHandler.Close)
	orders.Delete("/:id", admin, orderHandler.Delete)
	orders.Get("/:id/requests", orderHandler.Requests)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Post("/:id/documents", documentHandler.Attach)
	orders.Get("/:id/documents", documentHandler.ListByOrder)

	// Solicitudes de repuestos: aprobación diferida, solo-admin.
	requests := protected.Group("/parts-requests", admin)
	requestHandler := NewPartsRequestHandler(deps.WorkOrderUC, deps.InventoryUC)
	requests.Get("/pending", requestHandler.Pending)
	requests.Post("/:id/approve", requestHandler.Approve)
	requests.Post("/:id/reject", requestHandler.Reject)

	// Pañol
	stock := protected.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	stock.Post("/", inventoryHandler.Create)
	stock.Get("/", inventoryHandler.List)
	stock.Get("/low", inventoryHandler.LowStock)
	stock.Get("/valuation", inventoryHandler.Valuation)
	stock.Get("/:id", inventoryHandler.GetByID)
	stock.Put("/:id", inventoryHandler.Update)
	stock.Delete("/:id", admin, inventoryHandler.Delete)
	stock.Post("/:id/entries", inventoryHandler.Entry)
	stock.Post("/:id/exits", inventoryHandler.Exit)
	stock.Get("/:id/kardex", inventoryHandler.Kardex)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", admin, supplierHandler.Delete)

	// Novedades
	notices := protected.Group("/notices")
	noticeHandler := NewNoticeHandler(deps.NoticeUC, deps.FleetUC)
	notices.Post("/", noticeHandler.Create)
	notices.Get("/", noticeHandler.ListActive)
	notices.Post("/:id/archive", noticeHandler.Archive)
	notices.Post("/:id/promote", noticeHandler.Promote)

	// Cubiertas
	tires := protected.Group("/tires")
	tireHandler := NewTireHandler(deps.TireUC)
	tires.Post("/", tireHandler.Create)
	tires.Get("/", tireHandler.List)
	tires.Put("/:id", tireHandler.Update)
	tires.Delete("/:id", admin, tireHandler.Delete)

	// Documentos
	documents := protected.Group("/documents")
	documents.Get("/", documentHandler.List)
	documents.Get("/:name", documentHandler.Download)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// IA
	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/analyze-text", aiHandler.AnalyzeText)
	ai.Post("/analyze-image", aiHandler.AnalyzeImage)

	// Backup
	backup := protected.Group("/backup", admin)
	backupHandler := NewBackupHandler(deps.DBPath, deps.BackupDir, deps.Log)
	backup.Post("/", backupHandler.Run)
	backup.Get("/download", backupHandler.Download)
}
