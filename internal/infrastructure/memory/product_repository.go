package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a access
}

func (st *state) productByCode(code string) *entity.Product {
	for _, p := range st.products {
		if p.Code == code {
			return p
		}
	}
	return nil
}

func (st *state) sortedProducts() []*entity.Product {
	list := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Create inserta un producto; el código es único.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.products[product.ID]; ok || st.productByCode(product.Code) != nil {
			err = domain.ErrDuplicate
			return
		}
		st.products[product.ID] = copyProduct(product)
	})
	return err
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.a.with(func(st *state) { out = copyProduct(st.products[id]) })
	return out, nil
}

// GetByIDForUpdate equivale a GetByID dentro de la transacción exclusiva.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	r.a.with(func(st *state) { out = copyProduct(st.productByCode(code)) })
	return out, nil
}

// List lista productos ordenados por nombre con paginación.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	r.a.with(func(st *state) {
		all := st.sortedProducts()
		from, to := paginate(len(all), limit, offset)
		for _, p := range all[from:to] {
			out = append(out, copyProduct(p))
		}
	})
	return out, nil
}

// ListAll lista todos los productos ordenados por nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.List(ctx, 0, 0)
}

// Update actualiza datos maestros y BOM sin tocar el stock.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.a.with(func(st *state) {
		cur, ok := st.products[product.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		if other := st.productByCode(product.Code); other != nil && other.ID != product.ID {
			err = domain.ErrDuplicate
			return
		}
		stock := cur.Stock
		created := cur.CreatedAt
		*cur = *copyProduct(product)
		cur.Stock = stock
		cur.CreatedAt = created
	})
	return err
}

// IncreaseStock suma qty al stock de producto terminado.
func (r *ProductRepo) IncreaseStock(_ context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	var err error
	r.a.with(func(st *state) {
		cur, ok := st.products[id]
		if !ok {
			err = domain.ErrProductNotFound
			return
		}
		cur.Stock = cur.Stock.Add(qty)
		out = cur.Stock
	})
	return out, err
}

// DecreaseStock resta qty si alcanza.
func (r *ProductRepo) DecreaseStock(_ context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	var err error
	r.a.with(func(st *state) {
		cur, ok := st.products[id]
		if !ok {
			err = domain.ErrProductNotFound
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

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.products[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		delete(st.products, id)
	})
	return err
}
