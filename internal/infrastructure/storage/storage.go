// Package storage elige el backend de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/memory"
	"github.com/jhoicas/erp-produccion/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-produccion/pkg/config"
	"github.com/jhoicas/erp-produccion/pkg/logger"
)

// Storage TxRunner y repositorios fuera de transacción del backend elegido.
type Storage struct {
	Driver string
	Runner ledger.TxRunner
	Repos  repository.TxRepositories
	close  func()
}

// Close libera el pool si lo hay.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre PostgreSQL (aplicando migraciones si DB_AUTO_MIGRATE) o un store en memoria.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Storage{Driver: config.StorageMemory, Runner: store, Repos: store.Repositories()}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &Storage{
			Driver: config.StoragePostgres,
			Runner: postgres.NewTxRunner(pool),
			Repos:  postgres.NewRepositories(pool),
			close:  pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
}
