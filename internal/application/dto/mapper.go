package dto

import (
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
)

// ToMaterialResponse convierte la entidad a la salida HTTP.
func ToMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID: m.ID, Name: m.Name, Stock: m.Stock, Unit: m.Unit, AvgCost: m.AvgCost,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

// ToMovementResponse convierte un movimiento del libro.
func ToMovementResponse(m *entity.MaterialMovement) MovementResponse {
	return MovementResponse{
		ID: m.ID, TransactionID: m.TransactionID, MaterialID: m.MaterialID, MaterialName: m.MaterialName,
		Type: m.Type, Quantity: m.Quantity, UnitCost: m.UnitCost, StockAfter: m.StockAfter, Date: m.Date,
	}
}

// ToProductResponse convierte un producto con su receta.
func ToProductResponse(p *entity.Product) ProductResponse {
	bom := make([]BOMLineDTO, 0, len(p.BOM))
	for _, l := range p.BOM {
		bom = append(bom, BOMLineDTO{
			MaterialID: l.MaterialID, MaterialName: l.MaterialName, QuantityPerUnit: l.QuantityPerUnit, Unit: l.Unit,
		})
	}
	return ProductResponse{
		ID: p.ID, Name: p.Name, Code: p.Code, PurchasePrice: p.PurchasePrice, SalePrice: p.SalePrice,
		Stock: p.Stock, Unit: p.Unit, BOM: bom, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// ToBOM convierte las líneas de entrada a la entidad compartida.
func ToBOM(lines []BOMLineDTO) []entity.BOMLine {
	out := make([]entity.BOMLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.BOMLine{
			MaterialID: l.MaterialID, MaterialName: l.MaterialName, QuantityPerUnit: l.QuantityPerUnit, Unit: l.Unit,
		})
	}
	return out
}

// ToProductionEventResponse convierte un evento del historial.
func ToProductionEventResponse(e *entity.ProductionEvent) ProductionEventResponse {
	consumed := make([]ConsumedMaterialDTO, 0, len(e.MaterialsConsumed))
	for _, c := range e.MaterialsConsumed {
		consumed = append(consumed, ConsumedMaterialDTO{
			MaterialID: c.MaterialID, MaterialName: c.MaterialName, Quantity: c.Quantity, Unit: c.Unit, UnitCost: c.UnitCost,
		})
	}
	return ProductionEventResponse{
		ID: e.ID, Date: e.Date, ProductID: e.ProductID, ProductName: e.ProductName, Quantity: e.Quantity,
		MaterialsConsumed: consumed, MaterialCost: e.MaterialCost, Status: e.Status,
	}
}

// ToProducibleResponse convierte la proyección del dashboard.
func ToProducibleResponse(rows []inventory.Projection) ProducibleResponse {
	items := make([]ProducibleDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ProducibleDTO{
			ProductID: r.ProductID, ProductCode: r.ProductCode, ProductName: r.ProductName,
			ProducibleUnits: r.ProducibleUnits, Unit: r.Unit,
			LimitingMaterial: r.LimitingMaterial, MissingMaterials: r.MissingMaterials,
		})
	}
	return ProducibleResponse{Items: items}
}
