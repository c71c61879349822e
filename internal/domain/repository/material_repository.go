package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByName(ctx context.Context, name string) (*entity.Material, error)
	// GetByIDForUpdate y GetByNameForUpdate bloquean la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Material, error)
	GetByNameForUpdate(ctx context.Context, name string) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
	// Update modifica nombre y unidad. El stock solo cambia vía IncreaseStock/DecreaseStock.
	Update(ctx context.Context, material *entity.Material) error
	IncreaseStock(ctx context.Context, id string, qty, avgCost decimal.Decimal) (decimal.Decimal, error)
	// DecreaseStock devuelve domain.ErrInsufficientStock si el stock actual es menor que qty.
	DecreaseStock(ctx context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}
