package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado del catálogo con su receta (BOM).
// Stock es la cantidad de producto terminado; sube con la producción y baja con las salidas.
type Product struct {
	ID            string
	Name          string
	Code          string // código único
	PurchasePrice decimal.Decimal // precio de costo
	SalePrice     decimal.Decimal // precio de venta
	Stock         decimal.Decimal
	Unit          string
	BOM           []BOMLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasRecipe indica si el producto es fabricable (tiene al menos una línea de BOM).
func (p *Product) HasRecipe() bool {
	return p != nil && len(p.BOM) > 0
}
