package production

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
	"github.com/jhoicas/erp-produccion/pkg/logger"
)

// Projector calcula bajo demanda cuántas unidades de cada producto se pueden fabricar.
// No guarda estado: cada llamada lee catálogo y stock actuales.
type Projector struct {
	products  repository.ProductRepository
	materials repository.MaterialRepository
	log       *logger.Logger
}

// NewProjector construye el caso de uso del dashboard.
func NewProjector(products repository.ProductRepository, materials repository.MaterialRepository, log *logger.Logger) *Projector {
	if log == nil {
		log = logger.Nop()
	}
	return &Projector{products: products, materials: materials, log: log.Named("projector")}
}

// Producible carga productos y materiales en paralelo y aplica inventory.Project.
func (p *Projector) Producible(ctx context.Context) ([]inventory.Projection, error) {
	var products []*entity.Product
	var materials []*entity.Material

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = p.products.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		materials, err = p.materials.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := inventory.Project(products, materials)
	for _, row := range out {
		if len(row.MissingMaterials) > 0 {
			p.log.Warn().
				Str("product", row.ProductName).
				Str("missing", strings.Join(row.MissingMaterials, ", ")).
				Msg("el BOM referencia materiales que no existen")
		}
	}
	return out, nil
}
