package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, code, purchase_price, sale_price, stock, unit, bom, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// La receta se guarda como JSONB en la columna bom.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var bom []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.PurchasePrice, &p.SalePrice, &p.Stock, &p.Unit, &bom, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(bom) > 0 {
		if err := json.Unmarshal(bom, &p.BOM); err != nil {
			return nil, fmt.Errorf("decode bom: %w", err)
		}
	}
	return &p, nil
}

func encodeBOM(lines []entity.BOMLine) ([]byte, error) {
	if lines == nil {
		lines = []entity.BOMLine{}
	}
	return json.Marshal(lines)
}

func (r *ProductRepo) getOne(ctx context.Context, query, op string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	bom, err := encodeBOM(p.BOM)
	if err != nil {
		return fmt.Errorf("encode bom: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.Code, p.PurchasePrice, p.SalePrice, p.Stock, p.Unit, bom, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, "get product", id)
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, "get product for update", id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, "get product by code", code)
}

// List lista productos por nombre con paginación. limit <= 0 devuelve todos.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name, id LIMIT $1 OFFSET $2`, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListAll devuelve el catálogo completo.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.List(ctx, 0, 0)
}

// Update actualiza un producto existente. No permite modificar Stock (se maneja vía IncreaseStock/DecreaseStock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return domain.ErrNotFound
	}
	bom, err := encodeBOM(p.BOM)
	if err != nil {
		return fmt.Errorf("encode bom: %w", err)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET name = $2, code = $3, purchase_price = $4, sale_price = $5, unit = $6, bom = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Code, p.PurchasePrice, p.SalePrice, p.Unit, bom, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncreaseStock suma qty al stock de producto terminado.
func (r *ProductRepo) IncreaseStock(ctx context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error) {
	if !validID(id) {
		return decimal.Zero, domain.ErrProductNotFound
	}
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1 RETURNING stock`, id, qty,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrProductNotFound
		}
		return decimal.Zero, fmt.Errorf("increase product stock: %w", err)
	}
	return stock, nil
}

// DecreaseStock descuenta qty si alcanza.
func (r *ProductRepo) DecreaseStock(ctx context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error) {
	if !validID(id) {
		return decimal.Zero, domain.ErrProductNotFound
	}
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2 RETURNING stock`, id, qty,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("decrease product stock: %w", err)
	}
	return stock, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
