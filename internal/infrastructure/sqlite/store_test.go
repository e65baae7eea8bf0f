package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/jhoicas/stok-takip/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), config.StoreConfig{Path: filepath.Join(t.TempDir(), "data", "stok.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(d, m, y int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func newLedger(s *Store) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(NewTxRunner(s), decimal.NewFromInt(20), nil)
}

func record(t *testing.T, uc *inventory.LedgerUseCase, material, price, qty, tax, date, category, supplier string) int64 {
	t.Helper()
	res, err := uc.RecordEntry(context.Background(), dto.RecordEntryRequest{
		Material: material, UnitPrice: price, Quantity: qty, TaxRate: tax, Date: date, Category: category, Supplier: supplier,
	})
	require.NoError(t, err)
	return res.ID
}

func TestLedger_Scenario(t *testing.T) {
	s := openTestStore(t)
	uc := newLedger(s)
	ctx := context.Background()

	entryID := record(t, uc, "Bolt", "2.00", "100", "20", "01.01.2024", "", "")

	entry, err := NewEntryRepository(s).GetByID(ctx, entryID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, entry.Quantity)
	assert.True(t, decimal.NewFromInt(240).Equal(entry.Total), "total %s", entry.Total)
	assert.True(t, decimal.RequireFromString("0.2").Equal(entry.TaxRate))
	assert.Equal(t, day(1, 1, 2024), entry.Date)
	assert.Empty(t, entry.Category)

	stock, err := NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.EqualValues(t, 100, stock.Total)

	res, err := uc.RecordExit(ctx, dto.RecordExitRequest{Material: "Bolt", Personnel: "Ayşe", Quantity: "30", Date: "02.01.2024"})
	require.NoError(t, err)
	assert.Equal(t, entryID, res.EntryID)

	exit, err := NewExitRepository(s).GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", exit.Personnel)
	assert.Equal(t, day(2, 1, 2024), exit.Date)

	stock, err = NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.EqualValues(t, 70, stock.Total)

	_, err = uc.RecordExit(ctx, dto.RecordExitRequest{Material: "Bolt", Personnel: "Ayşe", Quantity: "1000", Date: "03.01.2024"})
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.EqualValues(t, 70, ise.Available)

	stock, err = NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.EqualValues(t, 70, stock.Total)

	// la entrada de origen conserva su cantidad y su total
	entry, err = NewEntryRepository(s).GetByID(ctx, entryID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, entry.Quantity)
	assert.True(t, decimal.NewFromInt(240).Equal(entry.Total))
}

func TestLedger_TotalStoredUnrounded(t *testing.T) {
	s := openTestStore(t)
	id := record(t, newLedger(s), "Pul", "0.333", "3", "10", "01.01.2024", "", "")

	entry, err := NewEntryRepository(s).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.0989").Equal(entry.Total), "total %s", entry.Total)
}

func TestLedger_StockOverflowRejected(t *testing.T) {
	s := openTestStore(t)
	uc := newLedger(s)
	ctx := context.Background()

	record(t, uc, "Bolt", "1", "9223372036854775807", "0", "01.01.2024", "", "")
	_, err := uc.RecordEntry(ctx, dto.RecordEntryRequest{
		Material: "Bolt", UnitPrice: "1", Quantity: "9223372036854775807", TaxRate: "0", Date: "02.01.2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// el total sigue siendo entero y utilizable
	stock, err := NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.EqualValues(t, int64(9223372036854775807), stock.Total)

	var n int64
	require.NoError(t, s.db.Model(&entryModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	res, err := uc.RecordExit(ctx, dto.RecordExitRequest{Material: "Bolt", Personnel: "Ali", Quantity: "7", Date: "03.01.2024"})
	require.NoError(t, err)
	assert.EqualValues(t, int64(9223372036854775800), res.Remaining)
}

func TestLedger_UnknownMaterial(t *testing.T) {
	s := openTestStore(t)

	_, err := newLedger(s).RecordExit(context.Background(), dto.RecordExitRequest{Material: "Yok", Personnel: "Ali", Quantity: "1", Date: "01.01.2024"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var n int64
	require.NoError(t, s.db.Model(&exitModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEntryRepository_OldestWithBalance(t *testing.T) {
	s := openTestStore(t)
	uc := newLedger(s)
	ctx := context.Background()
	repo := NewEntryRepository(s)

	record(t, uc, "Kablo", "1", "5", "0", "10.01.2024", "", "")
	older := record(t, uc, "Kablo", "1", "5", "0", "05.01.2024", "", "")
	record(t, uc, "Kablo", "1", "5", "0", "05.01.2024", "", "")
	record(t, uc, "Kablo", "1", "0", "0", "01.01.2024", "", "") // sin saldo

	got, err := repo.OldestWithBalance(ctx, "Kablo")
	require.NoError(t, err)
	assert.Equal(t, older, got.ID)

	got, err = repo.OldestWithBalance(ctx, "kablo")
	require.NoError(t, err)
	assert.Nil(t, got, "coincidencia exacta del nombre")

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockRepository_UpsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := NewStockRepository(s)

	require.NoError(t, repo.Increase(ctx, "Vida", 5))
	require.NoError(t, repo.Increase(ctx, "Vida", 7))
	require.NoError(t, repo.Increase(ctx, "Boya", 2))
	require.NoError(t, repo.Decrease(ctx, "Boya", 2))
	assert.ErrorIs(t, repo.Decrease(ctx, "Yok", 1), domain.ErrNotFound)

	got, err := repo.Get(ctx, "Vida")
	require.NoError(t, err)
	assert.EqualValues(t, 12, got.Total)

	none, err := repo.Get(ctx, "Yok")
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*entity.StockLevel{{Material: "Vida", Total: 12}}, list)
}

func TestTxRunner_RollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := NewTxRunner(s).Run(ctx, func(entries repository.EntryRepository, _ repository.ExitRepository, stock repository.StockRepository) error {
		require.NoError(t, stock.Increase(ctx, "Bolt", 10))
		return domain.InvalidField("quantity")
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpen_PersistsAndResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stok.db")
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Path: path}, nil)
	require.NoError(t, err)
	record(t, newLedger(s), "Bolt", "1", "3", "0", "01.01.2024", "", "")
	require.NoError(t, s.Close())

	s, err = Open(ctx, config.StoreConfig{Path: path}, nil)
	require.NoError(t, err)
	got, err := NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 3, got.Total)
	require.NoError(t, s.Close())

	s, err = Open(ctx, config.StoreConfig{Path: path, ResetOnStart: true}, nil)
	require.NoError(t, err)
	defer s.Close()
	got, err = NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_BackupRestoreWipe(t *testing.T) {
	s := openTestStore(t)
	uc := newLedger(s)
	ctx := context.Background()

	record(t, uc, "Bolt", "2", "10", "0", "01.01.2024", "Hırdavat", "")
	backup := filepath.Join(t.TempDir(), "yedek.db")
	require.NoError(t, s.Backup(ctx, backup))

	record(t, uc, "Boya", "5", "4", "0", "02.01.2024", "", "")
	require.NoError(t, s.Wipe(ctx))

	list, err := NewStockRepository(s).ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Restore(ctx, backup))
	list, err = NewStockRepository(s).ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*entity.StockLevel{{Material: "Bolt", Total: 10}}, list)

	// el store sigue operativo después de restaurar
	record(t, newLedger(s), "Boya", "5", "4", "0", "02.01.2024", "", "")
	_, err = os.Stat(s.Path() + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestStore_RestoreRejectsNonSQLiteFile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	record(t, newLedger(s), "Bolt", "2", "10", "0", "01.01.2024", "", "")

	bogus := filepath.Join(t.TempDir(), "not.db")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not sqlite"), 0o644))

	assert.ErrorIs(t, s.Restore(ctx, bogus), domain.ErrInvalidInput)

	got, err := NewStockRepository(s).Get(ctx, "Bolt")
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.Total)
}
