package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)
var _ repository.MaterialMovementRepository = (*MovementRepo)(nil)

// ProductionRepo historial de producción en memoria (solo inserción).
type ProductionRepo struct {
	a access
}

// Create agrega un evento al historial.
func (r *ProductionRepo) Create(_ context.Context, event *entity.ProductionEvent) error {
	r.a.with(func(st *state) { st.productions = append(st.productions, copyEvent(event)) })
	return nil
}

// GetByID obtiene un evento por ID.
func (r *ProductionRepo) GetByID(_ context.Context, id string) (*entity.ProductionEvent, error) {
	var out *entity.ProductionEvent
	r.a.with(func(st *state) {
		for _, e := range st.productions {
			if e.ID == id {
				out = copyEvent(e)
				return
			}
		}
	})
	return out, nil
}

// List devuelve los eventos del más reciente al más antiguo.
func (r *ProductionRepo) List(_ context.Context, limit, offset int) ([]*entity.ProductionEvent, error) {
	var out []*entity.ProductionEvent
	r.a.with(func(st *state) {
		n := len(st.productions)
		from, to := paginate(n, limit, offset)
		for i := from; i < to; i++ {
			out = append(out, copyEvent(st.productions[n-1-i]))
		}
	})
	return out, nil
}

// MovementRepo registro de movimientos de material en memoria.
type MovementRepo struct {
	a access
}

// Create agrega un movimiento.
func (r *MovementRepo) Create(_ context.Context, movement *entity.MaterialMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.a.with(func(st *state) {
		cp := *movement
		st.movements = append(st.movements, &cp)
	})
	return nil
}

// List devuelve los movimientos (filtrados por material si se indica) del más reciente al más antiguo.
func (r *MovementRepo) List(_ context.Context, materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	var out []*entity.MaterialMovement
	r.a.with(func(st *state) {
		var filtered []*entity.MaterialMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			if materialID == "" || st.movements[i].MaterialID == materialID {
				filtered = append(filtered, st.movements[i])
			}
		}
		from, to := paginate(len(filtered), limit, offset)
		for _, m := range filtered[from:to] {
			cp := *m
			out = append(out, &cp)
		}
	})
	return out, nil
}
