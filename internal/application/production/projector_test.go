package production_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/application/production"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/memory"
)

func TestProjector_Producible(t *testing.T) {
	f := newFixture(t, nil)
	nurseCall(t, f)
	ctx := context.Background()
	require.NoError(t, f.repos.Products.Create(ctx, &entity.Product{
		ID: "p-clock", Name: "Digital Mosque Clock", Code: "JWS-001", Unit: entity.UnitUnit,
		BOM: []entity.BOMLine{{MaterialName: "Panel P10", QuantityPerUnit: d("6")}},
	}))
	require.NoError(t, f.repos.Products.Create(ctx, &entity.Product{
		ID: "p-led", Name: "LED Running Text Board", Code: "LRT-001", Unit: entity.UnitUnit,
	}))

	p := production.NewProjector(f.repos.Products, f.repos.Materials, nil)
	rows, err := p.Producible(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 2, "el producto sin receta no aparece")
	assert.Equal(t, "Digital Mosque Clock", rows[0].ProductName)
	assert.Equal(t, int64(0), rows[0].ProducibleUnits)
	assert.Equal(t, []string{"Panel P10"}, rows[0].MissingMaterials)
	assert.Equal(t, "Nurse Call Unit", rows[1].ProductName)
	assert.Equal(t, int64(4), rows[1].ProducibleUnits, "min(5, 5, floor(8 / 2))")
	assert.Equal(t, "Kabel Power", rows[1].LimitingMaterial)

	again, err := p.Producible(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, again, "sin cambios de stock la proyección es la misma")
}

func TestProjector_ReflejaProduccion(t *testing.T) {
	f := newFixture(t, nil)
	nurseCall(t, f)
	ctx := context.Background()
	p := production.NewProjector(f.repos.Products, f.repos.Materials, nil)

	_, err := f.reconciler.Produce(ctx, "p-nc", d("3"))
	require.NoError(t, err)

	rows, err := p.Producible(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ProducibleUnits, "quedan 2 / 2 / 2")
}

type fakeRecorder struct {
	mu        sync.Mutex
	runs      map[string]int
	shortages []string
	debited   int
}

func (r *fakeRecorder) ProductionRun(result, _ string, _ decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runs == nil {
		r.runs = map[string]int{}
	}
	r.runs[result]++
}

func (r *fakeRecorder) Shortage(material string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shortages = append(r.shortages, material)
}

func (r *fakeRecorder) MaterialDebited(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debited += n
}

func TestReconciler_ReportaMetricas(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	l := ledger.NewLedger(store, repos.Materials)
	rec := &fakeRecorder{}
	reconciler := production.NewReconciler(store, l, repos.Productions, nil, rec)
	f := &fixture{store: store, repos: repos, ledger: l, reconciler: reconciler}
	nurseCall(t, f)
	ctx := context.Background()

	_, err := reconciler.Produce(ctx, "p-nc", d("1"))
	require.NoError(t, err)
	_, err = reconciler.Produce(ctx, "p-nc", d("100"))
	require.Error(t, err)

	assert.Equal(t, 1, rec.runs["completed"])
	assert.Equal(t, 1, rec.runs["shortage"])
	assert.Equal(t, 3, rec.debited)
	assert.Len(t, rec.shortages, 3)
}
