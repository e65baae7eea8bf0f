package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/jhoicas/stok-takip/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool requiere TEST_DATABASE_URL; el esquema se recrea en cada test.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool, true))
	return pool
}

func day(d, m, y int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func TestLedger_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	uc := inventory.NewLedgerUseCase(NewTxRunner(pool), decimal.NewFromInt(20), nil)

	in, err := uc.RecordEntry(ctx, dto.RecordEntryRequest{Material: "Bolt", UnitPrice: "2", Quantity: "100", TaxRate: "20", Date: "01.01.2024", Category: "Hırdavat"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(240).Equal(in.Total))

	out, err := uc.RecordExit(ctx, dto.RecordExitRequest{Material: "Bolt", Personnel: "Ayşe", Quantity: "30", Date: "02.01.2024"})
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.EntryID)
	assert.EqualValues(t, 70, out.Remaining)

	_, err = uc.RecordExit(ctx, dto.RecordExitRequest{Material: "Bolt", Personnel: "Ayşe", Quantity: "71", Date: "03.01.2024"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	entry, err := NewEntryRepository(pool).GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, entry.Quantity)
	assert.Equal(t, day(1, 1, 2024), entry.Date)

	stock, err := NewAnalyticsRepository(pool).ListStock(ctx, repository.StockFilter{Material: "bol"})
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.EqualValues(t, 70, stock[0].Total)
	assert.Equal(t, "Hırdavat", stock[0].Category)

	cost, err := NewAnalyticsRepository(pool).SumPurchaseCost(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(240).Equal(cost))
}

func TestCatalog_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewCatalogRepository(pool)

	require.NoError(t, repo.AddCategory(ctx, "Elektrik"))
	require.NoError(t, repo.AddCategory(ctx, "Elektrik"))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Elektrik"}, cats)

	require.NoError(t, repo.RemoveCategory(ctx, "Elektrik"))
	assert.ErrorIs(t, repo.RemoveCategory(ctx, "Elektrik"), domain.ErrNotFound)

	store := NewStore(pool)
	assert.ErrorIs(t, store.Backup(ctx, "x.db"), domain.ErrUnsupported)
	require.NoError(t, store.Wipe(ctx))
}
