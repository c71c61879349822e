// Package seed carga el catálogo de demostración: materiales y productos con su receta.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/application/catalog"
	"github.com/jhoicas/erp-produccion/internal/application/dto"
	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

type materialSeed struct {
	name  string
	stock int64
	unit  string
}

type bomSeed struct {
	material string
	qty      int64
	unit     string
}

type productSeed struct {
	name, code     string
	purchase, sale int64
	stock          int64
	bom            []bomSeed
}

var demoMaterials = []materialSeed{
	{"Mainboard V1.2", 100, entity.UnitPcs},
	{"Casing Box", 150, entity.UnitPcs},
	{"Kabel Power", 500, entity.UnitMeter},
	{"Panel P10", 200, entity.UnitPcs},
	{"Controller JWS", 50, entity.UnitPcs},
	{"Power Supply 5V", 75, entity.UnitPcs},
}

var demoProducts = []productSeed{
	{"Nurse Call Unit", "NC-001", 1500000, 1750000, 50, []bomSeed{
		{"Mainboard V1.2", 1, entity.UnitPcs},
		{"Casing Box", 1, entity.UnitPcs},
		{"Kabel Power", 2, entity.UnitMeter},
	}},
	{"Digital Mosque Clock", "JWS-001", 4500000, 5000000, 25, []bomSeed{
		{"Panel P10", 6, entity.UnitPcs},
		{"Controller JWS", 1, entity.UnitPcs},
		{"Power Supply 5V", 2, entity.UnitPcs},
	}},
	{"Queuing Machine Display", "QMD-001", 1000000, 1250000, 30, nil},
	{"LED Running Text Board", "LRT-001", 500000, 650000, 100, nil},
}

// Result cuenta lo creado por Load.
type Result struct {
	Materials int
	Products  int
}

// Load crea el catálogo de demostración. Los materiales y productos que ya existen se omiten,
// por lo que puede ejecutarse varias veces.
func Load(ctx context.Context, materials *catalog.MaterialUseCase, products *catalog.ProductUseCase) (Result, error) {
	var res Result
	for _, m := range demoMaterials {
		_, err := materials.Create(ctx, dto.CreateMaterialRequest{
			Name:  m.name,
			Stock: decimal.NewFromInt(m.stock),
			Unit:  m.unit,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed material %s: %w", m.name, err)
		}
		res.Materials++
	}

	for _, p := range demoProducts {
		bom := make([]dto.BOMLineDTO, 0, len(p.bom))
		for _, l := range p.bom {
			bom = append(bom, dto.BOMLineDTO{MaterialName: l.material, QuantityPerUnit: decimal.NewFromInt(l.qty), Unit: l.unit})
		}
		_, err := products.Create(ctx, dto.CreateProductRequest{
			Name:          p.name,
			Code:          p.code,
			PurchasePrice: decimal.NewFromInt(p.purchase),
			SalePrice:     decimal.NewFromInt(p.sale),
			Stock:         decimal.NewFromInt(p.stock),
			Unit:          entity.UnitUnit,
			BOM:           bom,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed product %s: %w", p.code, err)
		}
		res.Products++
	}
	return res, nil
}
