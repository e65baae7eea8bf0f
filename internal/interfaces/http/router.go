package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/stok-takip/internal/application/analytics"
	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/application/maintenance"
	"github.com/jhoicas/stok-takip/internal/application/usecase"
	"github.com/jhoicas/stok-takip/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *inventory.LedgerUseCase
	Reports     *appanalytics.ReportUseCase
	Export      *appanalytics.ExportUseCase
	Dashboard   *appanalytics.DashboardUseCase
	Catalog     *usecase.CatalogUseCase
	Maintenance *maintenance.UseCase
	Log         *logger.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Log))

	api := app.Group("/api")

	// Movimientos
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	api.Post("/entries", inventoryHandler.RecordEntry)
	api.Post("/exits", inventoryHandler.RecordExit)

	// Reportes
	reports := api.Group("/reports")
	analyticsHandler := NewAnalyticsHandler(deps.Reports, deps.Export)
	reports.Get("/movements", analyticsHandler.GetMovements)
	reports.Get("/stock", analyticsHandler.GetStock)
	reports.Get("/monthly", analyticsHandler.GetMonthly)
	reports.Get("/:kind/export", analyticsHandler.Export)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard", dashboardHandler.GetSummary)

	// Catálogo y stock
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/materials", catalogHandler.Materials)
	api.Get("/suppliers", catalogHandler.Suppliers)
	api.Get("/stock", catalogHandler.AvailableStock)
	api.Get("/stock/:material", catalogHandler.StockOf)
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.AddCategory)
	categories.Delete("/:name", catalogHandler.RemoveCategory)

	// Mantenimiento
	maint := api.Group("/maintenance")
	maintenanceHandler := NewMaintenanceHandler(deps.Maintenance)
	maint.Post("/backup", maintenanceHandler.Backup)
	maint.Post("/restore", maintenanceHandler.Restore)
	maint.Delete("/data", maintenanceHandler.Wipe)
}
