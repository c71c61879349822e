package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

func TestGenerateWorkOrderPDF(t *testing.T) {
	g := NewWorkOrderGenerator("Demo Industries")
	ev := &entity.ProductionEvent{
		ID:          "4f0b7b62-1d55-4e0b-9d61-000000000001",
		Date:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ProductID:   "p1",
		ProductName: "Nurse Call Unit",
		Quantity:    decimal.NewFromInt(3),
		MaterialsConsumed: []entity.ConsumedMaterial{
			{MaterialName: "Mainboard V1.2", Quantity: decimal.NewFromInt(3), Unit: "pcs", UnitCost: decimal.NewFromInt(250000)},
			{MaterialName: "Kabel Power", Quantity: decimal.NewFromInt(6), Unit: "meter", UnitCost: decimal.NewFromInt(5000)},
		},
		MaterialCost: decimal.NewFromInt(780000),
		Status:       entity.ProductionStatusCompleted,
	}

	raw, err := g.GenerateWorkOrderPDF(context.Background(), ev)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateWorkOrderPDF_EventoNil(t *testing.T) {
	_, err := NewWorkOrderGenerator("x").GenerateWorkOrderPDF(context.Background(), nil)
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	g := NewWorkOrderGenerator("x")
	assert.Equal(t, "$1.750.000", g.Money(decimal.NewFromInt(1750000)))
	assert.Equal(t, "$250", g.Money(decimal.RequireFromString("249.6")))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "OP-4f0b7b62", shortID("4f0b7b62-1d55"))
	assert.Equal(t, "OP-abc", shortID("abc"))
}
