package repository

import (
	"context"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// ProductionRepository historial de producción (solo inserción).
type ProductionRepository interface {
	Create(ctx context.Context, event *entity.ProductionEvent) error
	GetByID(ctx context.Context, id string) (*entity.ProductionEvent, error)
	// List devuelve los eventos del más reciente al más antiguo.
	List(ctx context.Context, limit, offset int) ([]*entity.ProductionEvent, error)
}
