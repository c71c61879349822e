package dto

// ProducibleDTO fila del dashboard de unidades fabricables.
type ProducibleDTO struct {
	ProductID        string   `json:"product_id"`
	ProductCode      string   `json:"product_code"`
	ProductName      string   `json:"product_name"`
	ProducibleUnits  int64    `json:"producible_units"`
	Unit             string   `json:"unit"`
	LimitingMaterial string   `json:"limiting_material,omitempty"`
	MissingMaterials []string `json:"missing_materials,omitempty"`
}

// ProducibleResponse respuesta de GET /api/dashboard/producible.
type ProducibleResponse struct {
	Items []ProducibleDTO `json:"items"`
}
