// Package memory implementa los repositorios sobre un almacén en memoria.
//
// Cada transacción (Store.Run) toma el mutex del almacén durante toda su duración y trabaja
// sobre una copia del estado; la copia reemplaza al estado solo si fn no devuelve error.
// Las lecturas y escrituras fuera de transacción toman el mismo mutex por operación.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Store almacén en memoria con semántica transaccional todo-o-nada.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	materials   map[string]*entity.Material
	products    map[string]*entity.Product
	productions []*entity.ProductionEvent
	movements   []*entity.MaterialMovement
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{state: &state{
		materials: make(map[string]*entity.Material),
		products:  make(map[string]*entity.Product),
	}}
}

// Run ejecuta fn como una transacción serializada. Si fn falla, ningún cambio es visible.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(newRepos(access{tx: work})); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Repositories devuelve repositorios no transaccionales (cada operación es atómica por sí sola).
func (s *Store) Repositories() repository.TxRepositories {
	return newRepos(access{store: s})
}

func newRepos(a access) repository.TxRepositories {
	return repository.TxRepositories{
		Materials:   &MaterialRepo{a: a},
		Products:    &ProductRepo{a: a},
		Productions: &ProductionRepo{a: a},
		Movements:   &MovementRepo{a: a},
	}
}

// access resuelve sobre qué estado opera un repositorio. Con store != nil cada operación
// bloquea el mutex y usa el estado vigente; si no, opera sobre tx (el caller ya tiene el mutex).
type access struct {
	store *Store
	tx    *state
}

func (a access) with(fn func(st *state)) {
	if a.store == nil {
		fn(a.tx)
		return
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	fn(a.store.state)
}

func (st *state) clone() *state {
	c := &state{
		materials:   make(map[string]*entity.Material, len(st.materials)),
		products:    make(map[string]*entity.Product, len(st.products)),
		productions: st.productions[:len(st.productions):len(st.productions)],
		movements:   st.movements[:len(st.movements):len(st.movements)],
	}
	for id, m := range st.materials {
		c.materials[id] = copyMaterial(m)
	}
	for id, p := range st.products {
		c.products[id] = copyProduct(p)
	}
	return c
}

func copyMaterial(m *entity.Material) *entity.Material {
	if m == nil {
		return nil
	}
	cp := *m
	return &cp
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.BOM = append([]entity.BOMLine(nil), p.BOM...)
	return &cp
}

func copyEvent(e *entity.ProductionEvent) *entity.ProductionEvent {
	if e == nil {
		return nil
	}
	cp := *e
	cp.MaterialsConsumed = append([]entity.ConsumedMaterial(nil), e.MaterialsConsumed...)
	return &cp
}

func paginate(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
