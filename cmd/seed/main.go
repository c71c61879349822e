// seed carga el catálogo de demostración (materiales y productos con su BOM).
//
// Uso: go run ./cmd/seed
// Es idempotente: los registros que ya existen se omiten.
package main

import (
	"context"

	"github.com/jhoicas/erp-produccion/internal/application/catalog"
	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/application/seed"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/storage"
	"github.com/jhoicas/erp-produccion/pkg/config"
	"github.com/jhoicas/erp-produccion/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	repos := st.Repos
	stockLedger := ledger.NewLedger(st.Runner, repos.Materials)
	res, err := seed.Load(ctx,
		catalog.NewMaterialUseCase(st.Runner, stockLedger, repos.Materials, repos.Products, repos.Movements),
		catalog.NewProductUseCase(st.Runner, repos.Products, repos.Materials),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	log.Info().Int("materials", res.Materials).Int("products", res.Products).Msg("catálogo cargado")
}
