package entity

import "github.com/shopspring/decimal"

// BOMLine es una línea de la lista de materiales: cuánto de un material se requiere por unidad.
// MaterialID es la referencia estable; MaterialName se conserva como campo de visualización
// y como respaldo cuando la línea todavía no está enlazada a un material existente.
type BOMLine struct {
	MaterialID      string          `json:"material_id,omitempty"`
	MaterialName    string          `json:"material_name"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Unit            string          `json:"unit"`
}

// Requirement es una cantidad requerida de un material (por ejemplo, una línea de BOM escalada).
type Requirement struct {
	MaterialID   string
	MaterialName string
	Quantity     decimal.Decimal
}

// Key devuelve la clave de resolución: el ID si existe, si no el nombre.
func (r Requirement) Key() string {
	if r.MaterialID != "" {
		return "id:" + r.MaterialID
	}
	return "name:" + r.MaterialName
}
