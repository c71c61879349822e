package repository

import (
	"context"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// MaterialMovementRepository define el puerto para el registro de movimientos de material.
type MaterialMovementRepository interface {
	Create(ctx context.Context, movement *entity.MaterialMovement) error
	// List filtra por material si materialID no está vacío; orden del más reciente al más antiguo.
	List(ctx context.Context, materialID string, limit, offset int) ([]*entity.MaterialMovement, error)
}
