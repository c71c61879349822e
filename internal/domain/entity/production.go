package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatusCompleted es el único estado que registra el historial.
const ProductionStatusCompleted = "COMPLETED"

// ConsumedMaterial es la foto de una línea de BOM escalada por la cantidad producida.
type ConsumedMaterial struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// ProductionEvent registro de auditoría de una corrida de producción. Solo se agrega, nunca se modifica.
type ProductionEvent struct {
	ID                string
	Date              time.Time
	ProductID         string
	ProductName       string
	Quantity          decimal.Decimal
	MaterialsConsumed []ConsumedMaterial
	MaterialCost      decimal.Decimal // suma de Quantity * UnitCost de los materiales consumidos
	Status            string
}
