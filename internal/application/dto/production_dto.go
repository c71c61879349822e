package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduceRequest body para POST /api/production.
type ProduceRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ConsumedMaterialDTO material consumido por una corrida.
type ConsumedMaterialDTO struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// ProductionEventResponse salida de un evento de producción.
type ProductionEventResponse struct {
	ID                string                `json:"id"`
	Date              time.Time             `json:"date"`
	ProductID         string                `json:"product_id"`
	ProductName       string                `json:"product_name"`
	Quantity          decimal.Decimal       `json:"quantity"`
	MaterialsConsumed []ConsumedMaterialDTO `json:"materials_consumed"`
	MaterialCost      decimal.Decimal       `json:"material_cost"`
	Status            string                `json:"status"`
}

// ProductionListResponse historial paginado.
type ProductionListResponse struct {
	Items []ProductionEventResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
