package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func mat(id, name, stock string) *entity.Material {
	return &entity.Material{ID: id, Name: name, Stock: d(stock), Unit: entity.UnitPcs}
}

func line(name, qty string) entity.BOMLine {
	return entity.BOMLine{MaterialName: name, QuantityPerUnit: d(qty), Unit: entity.UnitPcs}
}

// ──────────────────────────────────────────────────────────────────────────────
// ScaleBOM / MergeRequirements
// ──────────────────────────────────────────────────────────────────────────────

func TestScaleBOM_MultiplicaExacto(t *testing.T) {
	bom := []entity.BOMLine{line("Mainboard", "1"), line("Cable", "2.5")}
	reqs := inventory.ScaleBOM(bom, d("3"))

	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].Quantity.Equal(d("3")))
	assert.True(t, reqs[1].Quantity.Equal(d("7.5")), "2.5 * 3 debe ser exactamente 7.5")
}

func TestScaleBOM_SumaLineasRepetidas(t *testing.T) {
	bom := []entity.BOMLine{line("Cable", "2"), line("Casing", "1"), line("Cable", "1")}
	reqs := inventory.ScaleBOM(bom, d("2"))

	require.Len(t, reqs, 2)
	assert.Equal(t, "Cable", reqs[0].MaterialName)
	assert.True(t, reqs[0].Quantity.Equal(d("6")))
	assert.Equal(t, "Casing", reqs[1].MaterialName)
}

func TestValidRequirements(t *testing.T) {
	assert.True(t, inventory.ValidRequirements([]entity.Requirement{{MaterialName: "A", Quantity: d("1")}}))
	assert.False(t, inventory.ValidRequirements([]entity.Requirement{{MaterialName: "A", Quantity: d("0")}}))
	assert.False(t, inventory.ValidRequirements([]entity.Requirement{{MaterialName: "A", Quantity: d("-2")}}))
	assert.False(t, inventory.ValidRequirements([]entity.Requirement{{Quantity: d("1")}}))
}

// ──────────────────────────────────────────────────────────────────────────────
// FindShortages
// ──────────────────────────────────────────────────────────────────────────────

func TestFindShortages_ReportaTodos(t *testing.T) {
	reqs := []entity.Requirement{
		{MaterialName: "Mainboard", Quantity: d("6")},
		{MaterialName: "Casing", Quantity: d("6")},
		{MaterialName: "Cable", Quantity: d("12")},
		{MaterialName: "Fantasma", Quantity: d("1")},
	}
	resolved := []*entity.Material{
		mat("m1", "Mainboard", "5"),
		mat("m2", "Casing", "6"),
		mat("m3", "Cable", "8"),
		nil,
	}

	shortages := inventory.FindShortages(reqs, resolved)

	require.Len(t, shortages, 3, "Mainboard, Cable y el material inexistente deben aparecer")
	assert.Equal(t, "Mainboard", shortages[0].MaterialName)
	assert.True(t, shortages[0].Available.Equal(d("5")))
	assert.Equal(t, "Cable", shortages[1].MaterialName)
	assert.True(t, shortages[1].Required.Equal(d("12")))
	assert.True(t, shortages[2].Missing)
	assert.True(t, shortages[2].Available.IsZero())
}

func TestFindShortages_SinFaltantes(t *testing.T) {
	reqs := []entity.Requirement{{MaterialName: "Panel P10", Quantity: d("10")}}
	assert.Empty(t, inventory.FindShortages(reqs, []*entity.Material{mat("p", "Panel P10", "10")}))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProducibleUnits / Project
// ──────────────────────────────────────────────────────────────────────────────

func TestProducibleUnits_PisoYMinimo(t *testing.T) {
	idx := inventory.NewMaterialIndex([]*entity.Material{mat("a", "A", "20"), mat("b", "B", "2")})
	units, limiting, missing := inventory.ProducibleUnits([]entity.BOMLine{line("A", "6"), line("B", "1")}, idx)

	assert.Equal(t, int64(2), units, "min(floor(20/6), floor(2/1)) = min(3, 2) = 2")
	assert.Equal(t, "B", limiting)
	assert.Empty(t, missing)
}

func TestProducibleUnits_MaterialAusenteEsCero(t *testing.T) {
	idx := inventory.NewMaterialIndex([]*entity.Material{mat("a", "A", "100")})
	units, _, missing := inventory.ProducibleUnits([]entity.BOMLine{line("A", "1"), line("Z", "1")}, idx)

	assert.Equal(t, int64(0), units)
	assert.Equal(t, []string{"Z"}, missing)
}

func TestProducibleUnits_FraccionesExactas(t *testing.T) {
	idx := inventory.NewMaterialIndex([]*entity.Material{mat("a", "A", "0.9")})
	units, _, _ := inventory.ProducibleUnits([]entity.BOMLine{line("A", "0.3")}, idx)
	assert.Equal(t, int64(3), units, "0.9 / 0.3 es exactamente 3")
}

func TestProducibleUnits_ResuelvePorID(t *testing.T) {
	idx := inventory.NewMaterialIndex([]*entity.Material{mat("a", "Nombre Nuevo", "10")})
	l := line("Nombre Viejo", "2")
	l.MaterialID = "a"
	units, _, missing := inventory.ProducibleUnits([]entity.BOMLine{l}, idx)
	assert.Equal(t, int64(5), units, "una línea enlazada por ID sobrevive al renombrado")
	assert.Empty(t, missing)
}

func TestProject_ExcluyeSinRecetaYEsDeterminista(t *testing.T) {
	products := []*entity.Product{
		{ID: "p2", Code: "JWS-001", Name: "Digital Mosque Clock", Unit: "unit",
			BOM: []entity.BOMLine{line("Panel P10", "6"), line("Controller JWS", "1")}},
		{ID: "p3", Code: "QMD-001", Name: "Queuing Machine Display", Unit: "unit"},
		{ID: "p1", Code: "NC-001", Name: "Nurse Call Unit", Unit: "unit",
			BOM: []entity.BOMLine{line("Mainboard", "1")}},
	}
	materials := []*entity.Material{
		mat("m1", "Panel P10", "20"), mat("m2", "Controller JWS", "2"), mat("m3", "Mainboard", "7"),
	}

	first := inventory.Project(products, materials)
	second := inventory.Project(products, materials)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, "Digital Mosque Clock", first[0].ProductName)
	assert.Equal(t, int64(2), first[0].ProducibleUnits)
	assert.Equal(t, "Nurse Call Unit", first[1].ProductName)
	assert.Equal(t, int64(7), first[1].ProducibleUnits)
	assert.True(t, materials[0].Stock.Equal(d("20")), "Project no debe mutar materiales")
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := inventory.CostCalculator(d("10"), d("100"), d("10"), d("200"))
	assert.True(t, got.Equal(d("150")))
	assert.True(t, inventory.CostCalculator(d("0"), d("0"), d("0"), d("5")).IsZero())
}

func TestLinkBOM_CompletaIDYNoMutaOriginal(t *testing.T) {
	idx := inventory.NewMaterialIndex([]*entity.Material{mat("m1", "Panel P10", "10")})
	bom := []entity.BOMLine{line("Panel P10", "6"), line("Inexistente", "1")}

	linked := inventory.LinkBOM(bom, idx)

	assert.Equal(t, "m1", linked[0].MaterialID)
	assert.Empty(t, linked[1].MaterialID)
	assert.Empty(t, bom[0].MaterialID, "el BOM original no se modifica")
}

func TestReferences(t *testing.T) {
	m := mat("m1", "Casing Box", "1")
	assert.True(t, inventory.References([]entity.BOMLine{{MaterialID: "m1", MaterialName: "Nombre viejo"}}, m))
	assert.True(t, inventory.References([]entity.BOMLine{line("Casing Box", "1")}, m))
	assert.False(t, inventory.References([]entity.BOMLine{line("Panel P10", "1")}, m))
}

func TestAttachBOM(t *testing.T) {
	m := mat("m1", "Kabel Power 2x0.75", "8")
	bom := []entity.BOMLine{
		line("Kabel Power", "2"),
		{MaterialID: "m1", MaterialName: "Kabel viejo", QuantityPerUnit: d("1")},
		{MaterialID: "m9", MaterialName: "Kabel Power", QuantityPerUnit: d("1")},
		line("Panel P10", "1"),
	}

	out, changed := inventory.AttachBOM(bom, m, "Kabel Power")

	require.True(t, changed)
	assert.Equal(t, "m1", out[0].MaterialID, "línea sin ID con el nombre anterior")
	assert.Equal(t, "Kabel Power 2x0.75", out[0].MaterialName)
	assert.Equal(t, "Kabel Power 2x0.75", out[1].MaterialName, "línea enlazada por ID")
	assert.Equal(t, "m9", out[2].MaterialID, "una línea enlazada a otro material no se toca")
	assert.Equal(t, "Panel P10", out[3].MaterialName)
	assert.Empty(t, bom[0].MaterialID, "el BOM original no se modifica")

	_, changed = inventory.AttachBOM(out, m, m.Name)
	assert.False(t, changed)
}
