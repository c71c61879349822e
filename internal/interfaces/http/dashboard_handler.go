package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-produccion/internal/application/dto"
	"github.com/jhoicas/erp-produccion/internal/application/production"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
)

// MaterialLister lista materiales ordenados por nombre. *ledger.Ledger lo implementa.
type MaterialLister interface {
	List(ctx context.Context) ([]*entity.Material, error)
}

// XLSXExporter arma el libro Excel del dashboard. report.ProducibleXLSX cumple la firma.
type XLSXExporter func(rows []inventory.Projection, materials []*entity.Material) ([]byte, error)

// DashboardHandler unidades fabricables con el stock actual.
type DashboardHandler struct {
	projector *production.Projector
	materials MaterialLister
	export    XLSXExporter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(projector *production.Projector, materials MaterialLister, export XLSXExporter) *DashboardHandler {
	return &DashboardHandler{projector: projector, materials: materials, export: export}
}

// Producible godoc
// @Summary      Unidades fabricables por producto
// @Description  min(floor(stock / cantidad por unidad)) sobre el BOM. Los productos sin receta no aparecen.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ProducibleResponse
// @Router       /api/dashboard/producible [get]
func (h *DashboardHandler) Producible(c *fiber.Ctx) error {
	rows, err := h.projector.Producible(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProducibleResponse(rows))
}

// ProducibleXLSX godoc
// @Summary      Exportar unidades fabricables a Excel
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/dashboard/producible.xlsx [get]
func (h *DashboardHandler) ProducibleXLSX(c *fiber.Ctx) error {
	ctx := c.UserContext()
	rows, err := h.projector.Producible(ctx)
	if err != nil {
		return writeError(c, err)
	}
	materials, err := h.materials.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	raw, err := h.export(rows, materials)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="fabricables-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(raw)
}
