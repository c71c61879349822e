package inventory

import "github.com/jhoicas/erp-produccion/internal/domain/entity"

// MaterialIndex resuelve materiales por ID (referencia estable) o por nombre (respaldo).
type MaterialIndex struct {
	byID   map[string]*entity.Material
	byName map[string]*entity.Material
}

// NewMaterialIndex construye el índice a partir de una lista de materiales.
func NewMaterialIndex(materials []*entity.Material) MaterialIndex {
	idx := MaterialIndex{
		byID:   make(map[string]*entity.Material, len(materials)),
		byName: make(map[string]*entity.Material, len(materials)),
	}
	for _, m := range materials {
		if m == nil {
			continue
		}
		idx.byID[m.ID] = m
		idx.byName[m.Name] = m
	}
	return idx
}

// Resolve busca primero por ID y luego por nombre. Devuelve nil si no existe.
func (i MaterialIndex) Resolve(materialID, materialName string) *entity.Material {
	if materialID != "" {
		if m, ok := i.byID[materialID]; ok {
			return m
		}
	}
	if m, ok := i.byName[materialName]; ok {
		return m
	}
	return nil
}

// LinkBOM devuelve una copia del BOM con cada línea enlazada al material que resuelve:
// se completa MaterialID y se toma el nombre vigente. Las líneas sin material quedan igual.
func LinkBOM(bom []entity.BOMLine, idx MaterialIndex) []entity.BOMLine {
	out := make([]entity.BOMLine, len(bom))
	for i, line := range bom {
		if m := idx.Resolve(line.MaterialID, line.MaterialName); m != nil {
			line.MaterialID = m.ID
			line.MaterialName = m.Name
		}
		out[i] = line
	}
	return out
}

// References indica si alguna línea del BOM apunta al material m, por ID o por nombre.
func References(bom []entity.BOMLine, m *entity.Material) bool {
	for _, line := range bom {
		if (line.MaterialID != "" && line.MaterialID == m.ID) || line.MaterialName == m.Name {
			return true
		}
	}
	return false
}

// AttachBOM enlaza a m las líneas que lo referencian: por ID, o sin ID y con nombre matchName
// (el nombre anterior en un renombrado). Las líneas enlazadas toman el ID y el nombre vigentes
// de m. Devuelve una copia y si hubo cambios.
func AttachBOM(bom []entity.BOMLine, m *entity.Material, matchName string) ([]entity.BOMLine, bool) {
	out := make([]entity.BOMLine, len(bom))
	changed := false
	for i, line := range bom {
		byID := line.MaterialID == m.ID
		byName := line.MaterialID == "" && line.MaterialName == matchName
		if (byID || byName) && (line.MaterialID != m.ID || line.MaterialName != m.Name) {
			line.MaterialID = m.ID
			line.MaterialName = m.Name
			changed = true
		}
		out[i] = line
	}
	return out, changed
}
