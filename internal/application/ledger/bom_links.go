package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

// AttachToProducts reescribe los BOM que referencian a m (ver inventory.AttachBOM). Se llama
// al crear un material, con matchName = m.Name, y al renombrarlo, con el nombre anterior.
// Los productos afectados se bloquean en orden de ID antes de escribirlos; quien además vaya a
// bloquear el material debe llamar a esta función primero (producto antes que material, como Produce).
func AttachToProducts(ctx context.Context, products repository.ProductRepository, m *entity.Material, matchName string, now time.Time) error {
	all, err := products.ListAll(ctx)
	if err != nil {
		return err
	}
	var ids []string
	for _, p := range all {
		if _, changed := inventory.AttachBOM(p.BOM, m, matchName); changed {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		p, err := products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		bom, changed := inventory.AttachBOM(p.BOM, m, matchName)
		if !changed {
			continue
		}
		p.BOM = bom
		p.UpdatedAt = now
		if err := products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
