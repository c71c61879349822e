// Package pdf genera la orden de producción (comprobante de una corrida) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa               │  N° Orden + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: Nombre + cantidad producida + estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Cantidad | Unidad | Costo Unit | Subtotal │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: costo de materiales                                 │
//	│  FOOTER: QR con el ID del evento                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// WorkOrderGenerator genera la orden de producción con Maroto v2.
type WorkOrderGenerator struct {
	company string
	printer *message.Printer
}

// NewWorkOrderGenerator construye el generador. company aparece en el encabezado.
func NewWorkOrderGenerator(company string) *WorkOrderGenerator {
	return &WorkOrderGenerator{company: company, printer: message.NewPrinter(language.Spanish)}
}

// GenerateWorkOrderPDF genera el PDF de un evento de producción y devuelve sus bytes.
func (g *WorkOrderGenerator) GenerateWorkOrderPDF(_ context.Context, ev *entity.ProductionEvent) ([]byte, error) {
	if ev == nil {
		return nil, fmt.Errorf("pdf: evento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de producción", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(ev))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.productRow(ev))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(ev.MaterialsConsumed)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(ev))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(ev))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *WorkOrderGenerator) headerRow(ev *entity.ProductionEvent) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Control de producción", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEN DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(ev.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+ev.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *WorkOrderGenerator) productRow(ev *entity.ProductionEvent) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PRODUCTO TERMINADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(ev.ProductName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Cantidad producida: %s   |   Estado: %s",
				g.qty(ev.Quantity), ev.Status,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("Costo Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *WorkOrderGenerator) tableDetailRows(consumed []entity.ConsumedMaterial) []core.Row {
	result := make([]core.Row, 0, len(consumed))
	for _, c := range consumed {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(c.MaterialName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.qty(c.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(c.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.Money(c.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.Money(c.Quantity.Mul(c.UnitCost)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *WorkOrderGenerator) totalRow(ev *entity.ProductionEvent) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("COSTO MATERIALES:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.Money(ev.MaterialCost), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(ev *entity.ProductionEvent) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(ev.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("ID del evento:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 4, Left: 3}),
			text.New(ev.ID, props.Text{Size: 7, Top: 9, Left: 3, Color: colorGray}),
			text.New("Los materiales listados fueron descontados del inventario al registrar la orden.", props.Text{
				Size: 7, Top: 18, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea un importe sin decimales con separador de miles. Ej: 1750000 → "$1.750.000".
func (g *WorkOrderGenerator) Money(v decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%d", v.Round(0).IntPart())
}

// qty muestra la cantidad sin ceros decimales sobrantes.
func (g *WorkOrderGenerator) qty(v decimal.Decimal) string {
	return v.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return "OP-" + id[:8]
	}
	return "OP-" + id
}
