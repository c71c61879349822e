package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-produccion/internal/application/dto"
	"github.com/jhoicas/erp-produccion/internal/application/production"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// WorkOrderPDF genera la orden de producción. *pdf.WorkOrderGenerator lo implementa.
type WorkOrderPDF interface {
	GenerateWorkOrderPDF(ctx context.Context, ev *entity.ProductionEvent) ([]byte, error)
}

// ProductionHandler corridas de producción e historial.
type ProductionHandler struct {
	reconciler *production.Reconciler
	pdf        WorkOrderPDF
}

// NewProductionHandler construye el handler. pdf puede ser nil (la ruta responde 501).
func NewProductionHandler(reconciler *production.Reconciler, pdf WorkOrderPDF) *ProductionHandler {
	return &ProductionHandler{reconciler: reconciler, pdf: pdf}
}

// Produce godoc
// @Summary      Registrar producción
// @Description  Debita los materiales del BOM escalado y acredita el producto terminado en una sola transacción.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "product_id y quantity"
// @Success      201   {object}  dto.ProductionEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con la lista de faltantes en details"
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ev, err := h.reconciler.Produce(c.UserContext(), in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductionEventResponse(ev))
}

// List godoc
// @Summary      Historial de producción
// @Tags         production
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductionListResponse
// @Router       /api/production [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.reconciler.History(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ProductionEventResponse, 0, len(list))
	for _, ev := range list {
		items = append(items, dto.ToProductionEventResponse(ev))
	}
	return c.JSON(dto.ProductionListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// GetByID godoc
// @Summary      Obtener evento de producción
// @Tags         production
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.ProductionEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	ev, err := h.reconciler.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductionEventResponse(ev))
}

// PDF godoc
// @Summary      Orden de producción en PDF
// @Tags         production
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id}/pdf [get]
func (h *ProductionHandler) PDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generador PDF no configurado"})
	}
	ev, err := h.reconciler.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	raw, err := h.pdf.GenerateWorkOrderPDF(c.UserContext(), ev)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="orden-%s.pdf"`, ev.ID))
	return c.Send(raw)
}
