package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, stock, unit, avg_cost, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.Stock, &m.Unit, &m.AvgCost, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepo) getOne(ctx context.Context, query, op string, arg any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO materials (`+materialColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Name, m.Stock, m.Unit, m.AvgCost, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, "get material", id)
}

// GetByName obtiene un material por nombre exacto.
func (r *MaterialRepo) GetByName(ctx context.Context, name string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE name = $1`, "get material by name", name)
}

// GetByIDForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, "get material for update", id)
}

// GetByNameForUpdate igual que GetByIDForUpdate pero por nombre.
func (r *MaterialRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE name = $1 FOR UPDATE`, "get material by name for update", name)
}

// List devuelve todos los materiales ordenados por nombre.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update modifica nombre y unidad.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	if !validID(m.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE materials SET name = $2, unit = $3, updated_at = $4 WHERE id = $1`,
		m.ID, m.Name, m.Unit, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncreaseStock suma qty al stock y fija el costo promedio. Devuelve el stock resultante.
func (r *MaterialRepo) IncreaseStock(ctx context.Context, id string, qty, avgCost decimal.Decimal) (decimal.Decimal, error) {
	if !validID(id) {
		return decimal.Zero, domain.ErrMaterialNotFound
	}
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE materials SET stock = stock + $2, avg_cost = $3, updated_at = now() WHERE id = $1 RETURNING stock`,
		id, qty, avgCost,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrMaterialNotFound
		}
		return decimal.Zero, fmt.Errorf("increase material stock: %w", err)
	}
	return stock, nil
}

// DecreaseStock descuenta qty. El WHERE stock >= qty impide sobregirar aunque la fila no
// se haya bloqueado antes.
func (r *MaterialRepo) DecreaseStock(ctx context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error) {
	if !validID(id) {
		return decimal.Zero, domain.ErrMaterialNotFound
	}
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE materials SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2 RETURNING stock`,
		id, qty,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("decrease material stock: %w", err)
	}
	return stock, nil
}

// Delete elimina un material por ID.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
