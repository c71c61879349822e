// Package catalog contiene los casos de uso de datos maestros: productos con su receta y materiales.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/application/dto"
	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía producción o
// CreditStock/DebitStock.
type ProductUseCase struct {
	txRunner  ledger.TxRunner
	products  repository.ProductRepository
	materials repository.MaterialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ledger.TxRunner, products repository.ProductRepository, materials repository.MaterialRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, products: products, materials: materials}
}

// Create crea un nuevo producto. Las líneas del BOM que nombran un material existente quedan
// enlazadas por su ID.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" || in.Code == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.PurchasePrice.IsPositive() || !in.SalePrice.IsPositive() || in.Stock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	bom := dto.ToBOM(in.BOM)
	if err := validateBOM(bom); err != nil {
		return nil, err
	}

	existing, err := uc.products.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if bom, err = uc.linkBOM(ctx, bom); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Code:          in.Code,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
		Unit:          in.Unit,
		BOM:           bom,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto o domain.ErrProductNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Update actualiza un producto. No permite modificar Stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != product.Code {
			other, err := uc.products.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		product.Code = code
	}
	if in.PurchasePrice != nil {
		if !in.PurchasePrice.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if !in.SalePrice.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.Unit != nil {
		if *in.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.BOM != nil {
		bom := dto.ToBOM(*in.BOM)
		if err := validateBOM(bom); err != nil {
			return nil, err
		}
		if product.BOM, err = uc.linkBOM(ctx, bom); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// List lista productos por nombre con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	err := uc.products.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrProductNotFound
	}
	return err
}

// CreditStock suma qty al stock de producto terminado (ajuste de entrada).
func (uc *ProductUseCase) CreditStock(ctx context.Context, id string, qty decimal.Decimal) (*dto.ProductResponse, error) {
	return uc.moveStock(ctx, id, qty, repository.ProductRepository.IncreaseStock)
}

// DebitStock descuenta qty del producto terminado (salida por venta). Devuelve
// domain.ErrInsufficientStock si el stock no alcanza.
func (uc *ProductUseCase) DebitStock(ctx context.Context, id string, qty decimal.Decimal) (*dto.ProductResponse, error) {
	return uc.moveStock(ctx, id, qty, repository.ProductRepository.DecreaseStock)
}

type stockOp func(repository.ProductRepository, context.Context, string, decimal.Decimal) (decimal.Decimal, error)

func (uc *ProductUseCase) moveStock(ctx context.Context, id string, qty decimal.Decimal, op stockOp) (*dto.ProductResponse, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		stock, err := op(repos.Products, ctx, id, qty)
		if err != nil {
			return err
		}
		product.Stock = stock
		out = dto.ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) linkBOM(ctx context.Context, bom []entity.BOMLine) ([]entity.BOMLine, error) {
	if len(bom) == 0 {
		return bom, nil
	}
	materials, err := uc.materials.List(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.LinkBOM(bom, inventory.NewMaterialIndex(materials)), nil
}

// validateBOM: cada línea identifica un material y pide una cantidad positiva.
func validateBOM(bom []entity.BOMLine) error {
	for i := range bom {
		bom[i].MaterialName = strings.TrimSpace(bom[i].MaterialName)
		if bom[i].MaterialID == "" && bom[i].MaterialName == "" {
			return domain.ErrInvalidInput
		}
		if !bom[i].QuantityPerUnit.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}
