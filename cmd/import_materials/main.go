// import_materials registra compras de materiales desde un CSV exportado de la hoja de compras.
//
// Uso: go run ./cmd/import_materials --file compras.csv [--charset latin1] [--dry-run]
// Columnas: material, cantidad, unidad y opcionalmente costo_unitario. Separador ',' o ';'.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/csvimport"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/storage"
	"github.com/jhoicas/erp-produccion/pkg/config"
	"github.com/jhoicas/erp-produccion/pkg/logger"
)

func main() {
	file := pflag.StringP("file", "f", "", "ruta del CSV de compras")
	charset := pflag.String("charset", "utf-8", "codificación del archivo: utf-8, latin1, windows-1252")
	dryRun := pflag.Bool("dry-run", false, "solo valida el archivo, no registra compras")
	pflag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "falta --file")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("import_materials")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir archivo")
	}
	defer f.Close()

	rows, err := csvimport.ParsePurchases(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("rows", len(rows)).Msg("archivo leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	stockLedger := ledger.NewLedger(st.Runner, st.Repos.Materials)
	failed := 0
	for _, row := range rows {
		m, err := stockLedger.Purchase(ctx, ledger.PurchaseInput{
			MaterialName: row.Name,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			UnitCost:     row.UnitCost,
		})
		if err != nil {
			failed++
			log.Error().Err(err).Int("line", row.Line).Str("material", row.Name).Msg("compra rechazada")
			continue
		}
		log.Debug().Str("material", m.Name).Str("stock", m.Stock.String()).Msg("compra registrada")
	}
	log.Info().Int("ok", len(rows)-failed).Int("failed", failed).Msg("importación terminada")
	if failed > 0 {
		os.Exit(1)
	}
}
