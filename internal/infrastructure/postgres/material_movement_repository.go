package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

var _ repository.MaterialMovementRepository = (*MaterialMovementRepo)(nil)

// MaterialMovementRepo implementación del log de movimientos de material (usable con pool o tx).
type MaterialMovementRepo struct {
	q Querier
}

// NewMaterialMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMaterialMovementRepository(q Querier) *MaterialMovementRepo {
	return &MaterialMovementRepo{q: q}
}

// Create registra un movimiento. Asigna ID si viene vacío.
func (r *MaterialMovementRepo) Create(ctx context.Context, m *entity.MaterialMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO material_movements (id, transaction_id, material_id, material_name, type, quantity, unit_cost, stock_after, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.TransactionID, m.MaterialID, m.MaterialName, m.Type, m.Quantity, m.UnitCost, m.StockAfter, m.Date,
	)
	if err != nil {
		return fmt.Errorf("insert material movement: %w", err)
	}
	return nil
}

// List filtra por material si materialID no está vacío; del más reciente al más antiguo.
func (r *MaterialMovementRepo) List(ctx context.Context, materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, transaction_id, material_id, material_name, type, quantity, unit_cost, stock_after, date
		FROM material_movements
		WHERE ($1 = '' OR material_id::text = $1)
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`, materialID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list material movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialMovement
	for rows.Next() {
		var m entity.MaterialMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.MaterialID, &m.MaterialName, &m.Type,
			&m.Quantity, &m.UnitCost, &m.StockAfter, &m.Date); err != nil {
			return nil, fmt.Errorf("scan material movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
