// @title        Stok Takip API
// @version      1.0
// @description  Libro de stock FIFO: entradas, salidas, reportes y mantenimiento.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/stok-takip/docs"
	appanalytics "github.com/jhoicas/stok-takip/internal/application/analytics"
	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/application/maintenance"
	"github.com/jhoicas/stok-takip/internal/application/usecase"
	"github.com/jhoicas/stok-takip/internal/bootstrap"
	"github.com/jhoicas/stok-takip/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/stok-takip/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/stok-takip/internal/interfaces/http"
	"github.com/jhoicas/stok-takip/pkg/config"
	"github.com/jhoicas/stok-takip/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Store.Driver).
		Msg("iniciando aplicación")

	defaultTax, err := decimal.NewFromString(cfg.Ledger.DefaultTaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Ledger.DefaultTaxRate).Msg("DEFAULT_TAX_RATE inválido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	threshold := cfg.Ledger.LowStockThreshold
	ledgerUC := inventory.NewLedgerUseCase(backend.TxRunner, defaultTax, log)
	reportUC := appanalytics.NewReportUseCase(backend.Analytics, threshold)
	exportUC := appanalytics.NewExportUseCase(reportUC, cfg.Files.ExportDir,
		excel.NewExporter(),
		infrapdf.NewMarotoTableExporter(),
	)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Analytics, threshold)
	catalogUC := usecase.NewCatalogUseCase(backend.Catalog, backend.Stock)
	maintenanceUC := maintenance.NewUseCase(backend.Maintenance, cfg.Files.BackupDir, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024, // restauración de copias de seguridad
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stok Takip API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := backend.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledgerUC,
		Reports:     reportUC,
		Export:      exportUC,
		Dashboard:   dashboardUC,
		Catalog:     catalogUC,
		Maintenance: maintenanceUC,
		Log:         log.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}
