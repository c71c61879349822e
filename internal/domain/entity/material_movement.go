package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de material.
const (
	MovementTypeIN         = "IN"         // compra / entrada
	MovementTypeOUT        = "OUT"        // consumo manual / baja
	MovementTypePRODUCTION = "PRODUCTION" // consumo por orden de producción
)

// MaterialMovement representa un movimiento del libro de stock de materiales.
type MaterialMovement struct {
	ID            string
	TransactionID string // agrupa los movimientos de una misma operación (ej. ID del evento de producción)
	MaterialID    string
	MaterialName  string
	Type          string
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	StockAfter    decimal.Decimal
	Date          time.Time
}
