package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// Update actualiza datos maestros y BOM. No modifica Stock.
	Update(ctx context.Context, product *entity.Product) error
	IncreaseStock(ctx context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error)
	DecreaseStock(ctx context.Context, id string, qty decimal.Decimal) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}
