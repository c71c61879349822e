package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-produccion/internal/application/catalog"
	"github.com/jhoicas/erp-produccion/internal/application/dto"
	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/application/production"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/memory"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/report"
	apphttp "github.com/jhoicas/erp-produccion/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// buildTestApp arma la API completa sobre un store en memoria.
func buildTestApp() *fiber.App {
	store := memory.NewStore()
	repos := store.Repositories()
	l := ledger.NewLedger(store, repos.Materials)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MaterialUC: catalog.NewMaterialUseCase(store, l, repos.Materials, repos.Products, repos.Movements),
		ProductUC:  catalog.NewProductUseCase(store, repos.Products, repos.Materials),
		Reconciler: production.NewReconciler(store, l, repos.Productions, nil, nil),
		Projector:  production.NewProjector(repos.Products, repos.Materials, nil),
		Materials:  l,
		WorkOrder:  pdf.NewWorkOrderGenerator("Taller de Pruebas"),
		ExportXLSX: report.ProducibleXLSX,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createMaterial(t *testing.T, app *fiber.App, name, stock, unit string) dto.MaterialResponse {
	t.Helper()
	resp := do(t, app, fiber.MethodPost, "/api/materials", dto.CreateMaterialRequest{Name: name, Stock: d(stock), Unit: unit})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.MaterialResponse](t, resp)
}

// seedNurseCall crea Mainboard 5, Casing 5, Cable 8 y el Nurse Call Unit con BOM 1/1/2.
func seedNurseCall(t *testing.T, app *fiber.App) dto.ProductResponse {
	t.Helper()
	createMaterial(t, app, "Mainboard V1.2", "5", entity.UnitPcs)
	createMaterial(t, app, "Casing Box", "5", entity.UnitPcs)
	createMaterial(t, app, "Kabel Power", "8", entity.UnitMeter)
	resp := do(t, app, fiber.MethodPost, "/api/products", dto.CreateProductRequest{
		Name: "Nurse Call Unit", Code: "NC-001",
		PurchasePrice: d("1500000"), SalePrice: d("1750000"), Stock: d("0"), Unit: entity.UnitUnit,
		BOM: []dto.BOMLineDTO{
			{MaterialName: "Mainboard V1.2", QuantityPerUnit: d("1"), Unit: entity.UnitPcs},
			{MaterialName: "Casing Box", QuantityPerUnit: d("1"), Unit: entity.UnitPcs},
			{MaterialName: "Kabel Power", QuantityPerUnit: d("2"), Unit: entity.UnitMeter},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción
// ──────────────────────────────────────────────────────────────────────────────

func TestProduce_201YDebitaMateriales(t *testing.T) {
	app := buildTestApp()
	p := seedNurseCall(t, app)

	resp := do(t, app, fiber.MethodPost, "/api/production", dto.ProduceRequest{ProductID: p.ID, Quantity: d("2")})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	ev := decode[dto.ProductionEventResponse](t, resp)
	assert.Equal(t, entity.ProductionStatusCompleted, ev.Status)
	assert.Len(t, ev.MaterialsConsumed, 3)
	assert.True(t, d("2").Equal(ev.Quantity))

	listed := decode[[]dto.MaterialResponse](t, do(t, app, fiber.MethodGet, "/api/materials?product_id="+p.ID, nil))
	stocks := map[string]decimal.Decimal{}
	for _, m := range listed {
		stocks[m.Name] = m.Stock
	}
	assert.True(t, d("3").Equal(stocks["Mainboard V1.2"]))
	assert.True(t, d("4").Equal(stocks["Kabel Power"]))

	got := decode[dto.ProductResponse](t, do(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil))
	assert.True(t, d("2").Equal(got.Stock))
}

func TestProduce_409ConTodosLosFaltantes(t *testing.T) {
	app := buildTestApp()
	p := seedNurseCall(t, app)

	resp := do(t, app, fiber.MethodPost, "/api/production", dto.ProduceRequest{ProductID: p.ID, Quantity: d("6")})

	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details, ok := body["details"].([]any)
	require.True(t, ok, "details debe ser la lista de faltantes")
	require.Len(t, details, 3)
	names := make([]string, 0, len(details))
	for _, raw := range details {
		line := raw.(map[string]any)
		names = append(names, line["material_name"].(string))
		if line["material_name"] == "Kabel Power" {
			assert.Equal(t, "12", line["required"])
			assert.Equal(t, "8", line["available"])
		}
	}
	assert.ElementsMatch(t, []string{"Mainboard V1.2", "Casing Box", "Kabel Power"}, names)

	got := decode[dto.ProductResponse](t, do(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil))
	assert.True(t, got.Stock.IsZero(), "el producto no debe acreditarse")
}

func TestProduce_Errores(t *testing.T) {
	app := buildTestApp()
	p := seedNurseCall(t, app)
	resp := do(t, app, fiber.MethodPost, "/api/products", dto.CreateProductRequest{
		Name: "Sin receta", Code: "SR-1", PurchasePrice: d("1"), SalePrice: d("2"), Stock: d("0"), Unit: entity.UnitUnit,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	empty := decode[dto.ProductResponse](t, resp)

	tests := []struct {
		name   string
		body   dto.ProduceRequest
		status int
		code   string
	}{
		{"cantidad cero", dto.ProduceRequest{ProductID: p.ID, Quantity: d("0")}, fiber.StatusBadRequest, "INVALID_QUANTITY"},
		{"producto inexistente", dto.ProduceRequest{ProductID: "nope", Quantity: d("1")}, fiber.StatusNotFound, "NOT_FOUND"},
		{"sin receta", dto.ProduceRequest{ProductID: empty.ID, Quantity: d("1")}, fiber.StatusUnprocessableEntity, "NO_RECIPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, fiber.MethodPost, "/api/production", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestProduce_CuerpoInvalido(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(fiber.MethodPost, "/api/production", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProductionHistoryYPDF(t *testing.T) {
	app := buildTestApp()
	p := seedNurseCall(t, app)
	resp := do(t, app, fiber.MethodPost, "/api/production", dto.ProduceRequest{ProductID: p.ID, Quantity: d("1")})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	ev := decode[dto.ProductionEventResponse](t, resp)

	list := decode[dto.ProductionListResponse](t, do(t, app, fiber.MethodGet, "/api/production", nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, ev.ID, list.Items[0].ID)

	resp = do(t, app, fiber.MethodGet, "/api/production/"+ev.ID+"/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = do(t, app, fiber.MethodGet, "/api/production/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Materiales
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialDelete_409SiEstaEnUnaReceta(t *testing.T) {
	app := buildTestApp()
	seedNurseCall(t, app)
	free := createMaterial(t, app, "Tornillo M3", "100", entity.UnitPcs)
	materials := decode[[]dto.MaterialResponse](t, do(t, app, fiber.MethodGet, "/api/materials", nil))
	var mainboard dto.MaterialResponse
	for _, m := range materials {
		if m.Name == "Mainboard V1.2" {
			mainboard = m
		}
	}
	require.NotEmpty(t, mainboard.ID)

	resp := do(t, app, fiber.MethodDelete, "/api/materials/"+mainboard.ID, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, fiber.MethodDelete, "/api/materials/"+free.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = do(t, app, fiber.MethodGet, "/api/materials/"+free.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMaterialCreate_Duplicado(t *testing.T) {
	app := buildTestApp()
	createMaterial(t, app, "Panel P10", "10", entity.UnitPcs)
	resp := do(t, app, fiber.MethodPost, "/api/materials", dto.CreateMaterialRequest{Name: "Panel P10", Stock: d("1"), Unit: entity.UnitPcs})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestPurchaseYConsumo(t *testing.T) {
	app := buildTestApp()

	resp := do(t, app, fiber.MethodPost, "/api/materials/purchases", dto.PurchaseRequest{
		MaterialName: "Panel P10", Quantity: d("10"), Unit: entity.UnitPcs,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	panel := decode[dto.MaterialResponse](t, resp)
	assert.True(t, d("10").Equal(panel.Stock))

	resp = do(t, app, fiber.MethodPost, "/api/materials/consumptions", dto.ConsumptionRequest{
		Lines: []dto.RequirementDTO{{MaterialName: "Panel P10", Quantity: d("12")}},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/api/materials/consumptions", dto.ConsumptionRequest{
		Lines: []dto.RequirementDTO{{MaterialName: "Panel P10", Quantity: d("6")}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	lines := decode[[]dto.ConsumptionLineResponse](t, resp)
	require.Len(t, lines, 1)
	assert.True(t, d("4").Equal(lines[0].StockAfter))

	movs := decode[dto.MovementListResponse](t, do(t, app, fiber.MethodGet, "/api/materials/movements?material_id="+panel.ID, nil))
	assert.Len(t, movs.Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestProductStockOut_409SinStock(t *testing.T) {
	app := buildTestApp()
	p := seedNurseCall(t, app)

	resp := do(t, app, fiber.MethodPost, "/api/products/"+p.ID+"/stock-out", dto.StockOutRequest{Quantity: d("1")})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
}

func TestDashboardProducible(t *testing.T) {
	app := buildTestApp()
	p := seedNurseCall(t, app)

	resp := do(t, app, fiber.MethodGet, "/api/dashboard/producible", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ProducibleResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, p.ID, out.Items[0].ProductID)
	assert.Equal(t, int64(4), out.Items[0].ProducibleUnits, "Kabel Power 8/2 limita a 4")
	assert.Equal(t, "Kabel Power", out.Items[0].LimitingMaterial)

	resp = do(t, app, fiber.MethodGet, "/api/dashboard/producible.xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx es un zip")
}
