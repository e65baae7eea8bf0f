package inventory

import (
	"context"

	"github.com/jhoicas/stok-takip/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock: movimiento + total corriente, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
		stockRepo repository.StockRepository,
	) error) error
}
