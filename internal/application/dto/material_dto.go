package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest alta de un material en el libro.
type CreateMaterialRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Stock decimal.Decimal `json:"stock"`
	Unit  string          `json:"unit" validate:"required"`
}

// UpdateMaterialRequest cambio de datos maestros (el stock solo cambia vía compras y consumos).
type UpdateMaterialRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit *string `json:"unit"`
}

// PurchaseRequest body para POST /api/materials/purchases.
type PurchaseRequest struct {
	MaterialName string           `json:"material_name"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
}

// RequirementDTO una línea de consumo manual.
type RequirementDTO struct {
	MaterialID   string          `json:"material_id,omitempty"`
	MaterialName string          `json:"material_name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ConsumptionRequest body para POST /api/materials/consumptions.
type ConsumptionRequest struct {
	Lines []RequirementDTO `json:"lines"`
}

// ConsumptionLineResponse línea debitada con el stock resultante.
type ConsumptionLineResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockAfter   decimal.Decimal `json:"stock_after"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Stock     decimal.Decimal `json:"stock"`
	Unit      string          `json:"unit"`
	AvgCost   decimal.Decimal `json:"avg_cost"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	Date          time.Time       `json:"date"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
