package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación en memoria de MaterialRepository.
type MaterialRepo struct {
	a access
}

func (st *state) materialByName(name string) *entity.Material {
	for _, m := range st.materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Create inserta un material; el nombre es único.
func (r *MaterialRepo) Create(_ context.Context, material *entity.Material) error {
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.materials[material.ID]; ok || st.materialByName(material.Name) != nil {
			err = domain.ErrDuplicate
			return
		}
		st.materials[material.ID] = copyMaterial(material)
	})
	return err
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	r.a.with(func(st *state) { out = copyMaterial(st.materials[id]) })
	return out, nil
}

// GetByName obtiene un material por nombre.
func (r *MaterialRepo) GetByName(_ context.Context, name string) (*entity.Material, error) {
	var out *entity.Material
	r.a.with(func(st *state) { out = copyMaterial(st.materialByName(name)) })
	return out, nil
}

// GetByIDForUpdate equivale a GetByID: la transacción en memoria ya es exclusiva.
func (r *MaterialRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

// GetByNameForUpdate equivale a GetByName.
func (r *MaterialRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Material, error) {
	return r.GetByName(ctx, name)
}

// List devuelve todos los materiales (sin orden garantizado).
func (r *MaterialRepo) List(_ context.Context) ([]*entity.Material, error) {
	var out []*entity.Material
	r.a.with(func(st *state) {
		out = make([]*entity.Material, 0, len(st.materials))
		for _, m := range st.materials {
			out = append(out, copyMaterial(m))
		}
	})
	return out, nil
}

// Update modifica nombre y unidad.
func (r *MaterialRepo) Update(_ context.Context, material *entity.Material) error {
	var err error
	r.a.with(func(st *state) {
		cur, ok := st.materials[material.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		if other := st.materialByName(material.Name); other != nil && other.ID != material.ID {
			err = domain.ErrDuplicate
			return
		}
		cur.Name = material.Name
		cur.Unit = material.Unit
		cur.UpdatedAt = material.UpdatedAt
	})
	return err
}

// IncreaseStock suma qty al stock y fija el costo promedio.
func (r *MaterialRepo) IncreaseStock(_ context.Context, id string, qty, avgCost decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	var err error
	r.a.with(func(st *state) {
		cur, ok := st.materials[id]
		if !ok {
			err = domain.ErrMaterialNotFound
			return
		}
		cur.Stock = cur.Stock.Add(qty)
		cur.AvgCost = avgCost
		out = cur.Stock
	})
	return out, err
}

// DecreaseStock resta qty si alcanza; nunca deja el stock negativo.
func (r *MaterialRepo) DecreaseStock(_ context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	var err error
	r.a.with(func(st *state) {
		cur, ok := st.materials[id]
		if !ok {
			err = domain.ErrMaterialNotFound
			return
		}
		if cur.Stock.LessThan(qty) {
			err = domain.ErrInsufficientStock
			return
		}
		cur.Stock = cur.Stock.Sub(qty)
		out = cur.Stock
	})
	return out, err
}

// Delete elimina un material por ID.
func (r *MaterialRepo) Delete(_ context.Context, id string) error {
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.materials[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		delete(st.materials, id)
	})
	return err
}
