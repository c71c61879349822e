package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// Projection unidades fabricables de un producto con el stock actual de materiales.
type Projection struct {
	ProductID        string
	ProductCode      string
	ProductName      string
	ProducibleUnits  int64
	Unit             string
	LimitingMaterial string   // material que fija el máximo (el más restrictivo)
	MissingMaterials []string // referenciados en el BOM pero ausentes del libro
}

// ProducibleUnits devuelve min(floor(stock / QuantityPerUnit)) sobre las líneas del BOM.
// Un material ausente aporta 0. Para un BOM vacío devuelve 0.
func ProducibleUnits(bom []entity.BOMLine, idx MaterialIndex) (units int64, limiting string, missing []string) {
	if len(bom) == 0 {
		return 0, "", nil
	}
	var best decimal.Decimal
	first := true
	for _, line := range bom {
		stock := decimal.Zero
		m := idx.Resolve(line.MaterialID, line.MaterialName)
		if m == nil {
			missing = append(missing, line.MaterialName)
		} else {
			stock = m.Stock
		}
		possible := decimal.Zero
		if line.QuantityPerUnit.IsPositive() && stock.IsPositive() {
			// QuoRem con precisión 0 da el cociente entero exacto (floor para positivos).
			possible, _ = stock.QuoRem(line.QuantityPerUnit, 0)
		}
		if first || possible.LessThan(best) {
			best = possible
			limiting = line.MaterialName
			first = false
		}
	}
	return best.IntPart(), limiting, missing
}

// Project calcula las unidades fabricables de cada producto con receta, ordenadas por nombre.
// Función pura: no modifica productos ni materiales y no guarda estado.
func Project(products []*entity.Product, materials []*entity.Material) []Projection {
	idx := NewMaterialIndex(materials)
	out := make([]Projection, 0, len(products))
	for _, p := range products {
		if !p.HasRecipe() {
			continue
		}
		units, limiting, missing := ProducibleUnits(p.BOM, idx)
		out = append(out, Projection{
			ProductID:        p.ID,
			ProductCode:      p.Code,
			ProductName:      p.Name,
			ProducibleUnits:  units,
			Unit:             p.Unit,
			LimitingMaterial: limiting,
			MissingMaterials: missing,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].ProductCode < out[j].ProductCode
	})
	return out
}
