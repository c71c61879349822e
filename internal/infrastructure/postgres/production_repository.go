package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

const productionColumns = `id, date, product_id, product_name, quantity, materials_consumed, material_cost, status`

// ProductionRepo historial de producción sobre PostgreSQL (solo INSERT y lecturas).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

func scanProduction(row pgx.Row) (*entity.ProductionEvent, error) {
	var e entity.ProductionEvent
	var consumed []byte
	if err := row.Scan(&e.ID, &e.Date, &e.ProductID, &e.ProductName, &e.Quantity, &consumed, &e.MaterialCost, &e.Status); err != nil {
		return nil, err
	}
	if len(consumed) > 0 {
		if err := json.Unmarshal(consumed, &e.MaterialsConsumed); err != nil {
			return nil, fmt.Errorf("decode materials_consumed: %w", err)
		}
	}
	return &e, nil
}

// Create registra un evento de producción.
func (r *ProductionRepo) Create(ctx context.Context, e *entity.ProductionEvent) error {
	consumed := e.MaterialsConsumed
	if consumed == nil {
		consumed = []entity.ConsumedMaterial{}
	}
	raw, err := json.Marshal(consumed)
	if err != nil {
		return fmt.Errorf("encode materials_consumed: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO production_events (`+productionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Date, e.ProductID, e.ProductName, e.Quantity, raw, e.MaterialCost, e.Status,
	)
	if err != nil {
		return fmt.Errorf("insert production event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID; (nil, nil) si no existe.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.ProductionEvent, error) {
	if !validID(id) {
		return nil, nil
	}
	e, err := scanProduction(r.q.QueryRow(ctx, `SELECT `+productionColumns+` FROM production_events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production event: %w", err)
	}
	return e, nil
}

// List devuelve el historial del más reciente al más antiguo.
func (r *ProductionRepo) List(ctx context.Context, limit, offset int) ([]*entity.ProductionEvent, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+productionColumns+` FROM production_events ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list production events: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionEvent
	for rows.Next() {
		e, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
