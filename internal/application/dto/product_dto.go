package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLineDTO línea de receta. Basta con material_id o material_name.
type BOMLineDTO struct {
	MaterialID      string          `json:"material_id,omitempty"`
	MaterialName    string          `json:"material_name"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Unit            string          `json:"unit"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Code          string          `json:"code" validate:"required,min=1,max=100"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         decimal.Decimal `json:"stock"`
	Unit          string          `json:"unit" validate:"required"`
	BOM           []BOMLineDTO    `json:"bom"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock). BOM nil no modifica la receta.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Code          *string          `json:"code"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Unit          *string          `json:"unit"`
	BOM           *[]BOMLineDTO    `json:"bom"`
}

// StockOutRequest body para POST /api/products/:id/stock-out.
type StockOutRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         decimal.Decimal `json:"stock"`
	Unit          string          `json:"unit"`
	BOM           []BOMLineDTO    `json:"bom"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
