package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// ScaleBOM calcula los requerimientos de materiales para producir quantity unidades:
// requerido = QuantityPerUnit * quantity, sin redondeo.
func ScaleBOM(bom []entity.BOMLine, quantity decimal.Decimal) []entity.Requirement {
	reqs := make([]entity.Requirement, 0, len(bom))
	for _, line := range bom {
		reqs = append(reqs, entity.Requirement{
			MaterialID:   line.MaterialID,
			MaterialName: line.MaterialName,
			Quantity:     line.QuantityPerUnit.Mul(quantity),
		})
	}
	return MergeRequirements(reqs)
}

// MergeRequirements suma los requerimientos que apuntan al mismo material,
// conservando el orden de primera aparición.
func MergeRequirements(reqs []entity.Requirement) []entity.Requirement {
	pos := make(map[string]int, len(reqs))
	out := make([]entity.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if i, ok := pos[r.Key()]; ok {
			out[i].Quantity = out[i].Quantity.Add(r.Quantity)
			continue
		}
		pos[r.Key()] = len(out)
		out = append(out, r)
	}
	return out
}

// ValidRequirements verifica que todas las cantidades sean positivas y que cada
// requerimiento identifique un material.
func ValidRequirements(reqs []entity.Requirement) bool {
	for _, r := range reqs {
		if r.MaterialID == "" && r.MaterialName == "" {
			return false
		}
		if !r.Quantity.IsPositive() {
			return false
		}
	}
	return true
}
