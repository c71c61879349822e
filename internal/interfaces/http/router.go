package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-produccion/internal/application/catalog"
	"github.com/jhoicas/erp-produccion/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC *catalog.MaterialUseCase
	ProductUC  *catalog.ProductUseCase
	Reconciler *production.Reconciler
	Projector  *production.Projector
	Materials  MaterialLister
	WorkOrder  WorkOrderPDF
	ExportXLSX XLSXExporter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Materials. Las rutas fijas van antes de /:id.
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Post("/purchases", materialHandler.Purchase)
	materials.Post("/consumptions", materialHandler.Consume)
	materials.Get("/movements", materialHandler.Movements)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock-out", productHandler.StockOut)

	// Production
	prod := api.Group("/production")
	productionHandler := NewProductionHandler(deps.Reconciler, deps.WorkOrder)
	prod.Post("/", productionHandler.Produce)
	prod.Get("/", productionHandler.List)
	prod.Get("/:id", productionHandler.GetByID)
	prod.Get("/:id/pdf", productionHandler.PDF)

	// Dashboard
	dash := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Projector, deps.Materials, deps.ExportXLSX)
	dash.Get("/producible", dashboardHandler.Producible)
	dash.Get("/producible.xlsx", dashboardHandler.ProducibleXLSX)
}
