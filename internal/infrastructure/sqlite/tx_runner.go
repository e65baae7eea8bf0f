package sqlite

import (
	"context"

	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"gorm.io/gorm"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.store.Do(ctx, func(db *gorm.DB) error {
		err := db.Transaction(func(tx *gorm.DB) error {
			c := txConn{tx: tx}
			return fn(NewEntryRepository(c), NewExitRepository(c), NewStockRepository(c))
		})
		return domain.Storage("transaction", err)
	})
}
