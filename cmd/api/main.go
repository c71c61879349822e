package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/erp-produccion/internal/application/catalog"
	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/application/production"
	"github.com/jhoicas/erp-produccion/internal/application/seed"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/erp-produccion/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/report"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/erp-produccion/internal/interfaces/http"
	"github.com/jhoicas/erp-produccion/pkg/config"
	"github.com/jhoicas/erp-produccion/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix)
	}

	repos := st.Repos
	stockLedger := ledger.NewLedger(st.Runner, repos.Materials)
	materialUC := catalog.NewMaterialUseCase(st.Runner, stockLedger, repos.Materials, repos.Products, repos.Movements)
	productUC := catalog.NewProductUseCase(st.Runner, repos.Products, repos.Materials)

	var recorder production.Recorder
	if m != nil {
		recorder = m
	}
	reconciler := production.NewReconciler(st.Runner, stockLedger, repos.Productions, log, recorder)
	projector := production.NewProjector(repos.Products, repos.Materials, log)

	if cfg.App.SeedDemo {
		res, err := seed.Load(ctx, materialUC, productUC)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo de demostración")
		}
		log.Info().Int("materials", res.Materials).Int("products", res.Products).Msg("catálogo de demostración cargado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "ERP Producción API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": st.Driver})
	})
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC: materialUC,
		ProductUC:  productUC,
		Reconciler: reconciler,
		Projector:  projector,
		Materials:  stockLedger,
		WorkOrder:  infrapdf.NewWorkOrderGenerator(cfg.App.Name),
		ExportXLSX: report.ProducibleXLSX,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
