// Package bootstrap abre el almacenamiento configurado y expone sus puertos.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/application/maintenance"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/jhoicas/stok-takip/internal/infrastructure/postgres"
	"github.com/jhoicas/stok-takip/internal/infrastructure/sqlite"
	"github.com/jhoicas/stok-takip/pkg/config"
	"github.com/jhoicas/stok-takip/pkg/logger"
)

// Backend puertos de persistencia de un driver (sqlite o postgres).
type Backend struct {
	Driver      string
	TxRunner    inventory.TxRunner
	Stock       repository.StockRepository
	Analytics   repository.AnalyticsRepository
	Catalog     repository.CatalogRepository
	Maintenance maintenance.Store

	ping  func(context.Context) error
	close func() error
}

// Ping comprueba que el almacenamiento responde.
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// Close libera conexiones y archivos.
func (b *Backend) Close() error { return b.close() }

// Open crea el backend según cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Store, log)
		if err != nil {
			return nil, fmt.Errorf("abrir sqlite: %w", err)
		}
		return &Backend{
			Driver:      config.DriverSQLite,
			TxRunner:    sqlite.NewTxRunner(store),
			Stock:       sqlite.NewStockRepository(store),
			Analytics:   sqlite.NewAnalyticsRepository(store),
			Catalog:     sqlite.NewCatalogRepository(store),
			Maintenance: store,
			ping:        store.Ping,
			close:       store.Close,
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool, cfg.Store.ResetOnStart); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Driver:      config.DriverPostgres,
			TxRunner:    postgres.NewTxRunner(pool),
			Stock:       postgres.NewStockRepository(pool),
			Analytics:   postgres.NewAnalyticsRepository(pool),
			Catalog:     postgres.NewCatalogRepository(pool),
			Maintenance: postgres.NewStore(pool),
			ping:        pool.Ping,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("driver desconocido %q", cfg.Store.Driver)
}
