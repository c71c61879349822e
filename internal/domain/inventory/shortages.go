package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// FindShortages es la fase de validación del débito: compara cada requerimiento con el
// material resuelto y acumula TODOS los faltantes. Un material ausente cuenta como stock 0.
// resolved debe tener la misma longitud que reqs (nil = material inexistente).
func FindShortages(reqs []entity.Requirement, resolved []*entity.Material) []domain.Shortage {
	var shortages []domain.Shortage
	for i, r := range reqs {
		m := resolved[i]
		if m == nil {
			shortages = append(shortages, domain.Shortage{
				MaterialID:   r.MaterialID,
				MaterialName: r.MaterialName,
				Required:     r.Quantity,
				Available:    decimal.Zero,
				Missing:      true,
			})
			continue
		}
		if m.Stock.LessThan(r.Quantity) {
			shortages = append(shortages, domain.Shortage{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				Required:     r.Quantity,
				Available:    m.Stock,
			})
		}
	}
	return shortages
}
