// Package report exporta el dashboard de producción a Excel.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
)

const (
	sheetProducible = "Fabricables"
	sheetMaterials  = "Materiales"
)

// ProducibleXLSX arma un libro con dos hojas: unidades fabricables por producto y el stock
// de materiales que las limita.
func ProducibleXLSX(rows []inventory.Projection, materials []*entity.Material) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, sheetProducible); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetMaterials); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	header := []interface{}{"Código", "Producto", "Unidades fabricables", "Unidad", "Material limitante", "Materiales faltantes"}
	if err := f.SetSheetRow(sheetProducible, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, r := range rows {
		line := []interface{}{
			r.ProductCode,
			r.ProductName,
			r.ProducibleUnits,
			r.Unit,
			r.LimitingMaterial,
			strings.Join(r.MissingMaterials, ", "),
		}
		if err := setRow(f, sheetProducible, i+2, line); err != nil {
			return nil, err
		}
	}

	matHeader := []interface{}{"Material", "Stock", "Unidad", "Costo promedio"}
	if err := f.SetSheetRow(sheetMaterials, "A1", &matHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, m := range materials {
		stock, _ := m.Stock.Float64()
		cost, _ := m.AvgCost.Float64()
		line := []interface{}{m.Name, stock, m.Unit, cost}
		if err := setRow(f, sheetMaterials, i+2, line); err != nil {
			return nil, err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheetProducible, "A1", "F1", style)
		_ = f.SetCellStyle(sheetMaterials, "A1", "D1", style)
	}
	_ = f.SetColWidth(sheetProducible, "B", "B", 32)
	_ = f.SetColWidth(sheetProducible, "E", "F", 28)
	_ = f.SetColWidth(sheetMaterials, "A", "A", 28)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}
