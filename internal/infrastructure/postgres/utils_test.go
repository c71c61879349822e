package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("23514")))
}

func TestPageArgs(t *testing.T) {
	lim, off := pageArgs(0, -3)
	assert.Nil(t, lim)
	assert.Equal(t, 0, off)

	lim, off = pageArgs(20, 40)
	assert.Equal(t, 20, lim)
	assert.Equal(t, 40, off)
}

func TestMigracionesEmbebidas(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		raw, err := fs.ReadFile(migrationsFS, "migrations/"+e.Name())
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.Contains(body, "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(body, "-- +goose Down"), e.Name())
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("0b6f8f3e-4c1a-4d5e-9a2b-3c4d5e6f7a8b"))
	assert.False(t, validID("abc"))
	assert.False(t, validID(""))
}

// Con un Querier nil cualquier consulta entraría en pánico: los ids que no son UUID
// deben resolverse sin llegar a la base de datos.
func TestIDNoUUID_NoConsulta(t *testing.T) {
	ctx := context.Background()
	materials := NewMaterialRepository(nil)
	products := NewProductRepository(nil)
	productions := NewProductionRepository(nil)

	m, err := materials.GetByIDForUpdate(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, m)
	_, err = materials.DecreaseStock(ctx, "abc", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	assert.ErrorIs(t, materials.Delete(ctx, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, materials.Update(ctx, &entity.Material{ID: "abc"}), domain.ErrNotFound)

	p, err := products.GetByID(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, p)
	_, err = products.IncreaseStock(ctx, "abc", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, products.Delete(ctx, "abc"), domain.ErrNotFound)

	ev, err := productions.GetByID(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, ev)
}

func TestMigraciones_CantidadesExactasYMovimientosSinCascada(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	for _, e := range entries {
		raw, err := fs.ReadFile(migrationsFS, "migrations/"+e.Name())
		require.NoError(t, err)
		body := string(raw)
		assert.NotContains(t, body, "NUMERIC(18, 4)", "%s: la escala fija redondea el stock", e.Name())
		assert.NotContains(t, body, "ON DELETE CASCADE", e.Name())
	}
}
