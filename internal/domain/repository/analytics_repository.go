package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementFilter filtro común de las consultas de movimientos.
// From/To inclusive; Category exacta (en salidas aplica a la entrada de origen); Material por subcadena.
type MovementFilter struct {
	From     time.Time
	To       time.Time
	Category string
	Material string
}

// ExitMovement salida unida a su entrada de origen (precio unitario y categoría).
type ExitMovement struct {
	entity.Exit
	UnitPrice decimal.Decimal
	Category  string
}

// StockFilter filtro de la vista de stock actual.
type StockFilter struct {
	Category string // algún registro de entrada del material tiene esta categoría
	Material string // subcadena
}

// StockRow resultado crudo de la vista de stock: total corriente unido a la última entrada del material.
type StockRow struct {
	Material  string
	Total     int64
	UnitPrice decimal.Decimal
	Supplier  string
	Category  string
	LastEntry time.Time
}

// AnalyticsRepository define las consultas de lectura para reportes y dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	ListEntryMovements(ctx context.Context, f MovementFilter) ([]*entity.Entry, error)
	ListExitMovements(ctx context.Context, f MovementFilter) ([]*ExitMovement, error)

	// ListStock devuelve filas con total > 0 ordenadas por material.
	ListStock(ctx context.Context, f StockFilter) ([]StockRow, error)

	// ── Métodos del Dashboard ─────────────────────────────────────────────────

	SumPurchasedQuantity(ctx context.Context) (int64, error)
	// CountEntriesBelow cuenta entradas con cantidad < threshold.
	CountEntriesBelow(ctx context.Context, threshold int64) (int64, error)
	SumPurchaseCost(ctx context.Context) (decimal.Decimal, error)
	CountCategories(ctx context.Context) (int64, error)
}
