package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida usadas en materiales y líneas de BOM.
const (
	UnitPcs   = "pcs"
	UnitRoll  = "roll"
	UnitMeter = "meter"
	UnitCm    = "cm"
	UnitLiter = "liter"
	UnitGram  = "gram"
	UnitUnit  = "unit"
)

// Material representa un insumo (materia prima) con su cantidad disponible.
// Stock solo se modifica a través del libro de stock (Ledger); nunca es negativo.
type Material struct {
	ID        string
	Name      string          // único dentro del catálogo
	Stock     decimal.Decimal // cantidad disponible
	Unit      string
	AvgCost   decimal.Decimal // costo promedio ponderado por unidad (0 si no hay compras con costo)
	CreatedAt time.Time
	UpdatedAt time.Time
}
