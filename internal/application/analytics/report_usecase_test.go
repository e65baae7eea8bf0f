package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	entries []*entity.Entry
	exits   []*repository.ExitMovement
	stock   []repository.StockRow

	lastMovementFilter repository.MovementFilter
	err                error
}

func (f *fakeAnalyticsRepo) match(date time.Time, material, category string, filter repository.MovementFilter) bool {
	if date.Before(filter.From) || date.After(filter.To) {
		return false
	}
	if filter.Category != "" && category != filter.Category {
		return false
	}
	return filter.Material == "" || strings.Contains(material, filter.Material)
}

func (f *fakeAnalyticsRepo) ListEntryMovements(_ context.Context, filter repository.MovementFilter) ([]*entity.Entry, error) {
	f.lastMovementFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Entry
	for _, e := range f.entries {
		if f.match(e.Date, e.Material, e.Category, filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) ListExitMovements(_ context.Context, filter repository.MovementFilter) ([]*repository.ExitMovement, error) {
	var out []*repository.ExitMovement
	for _, x := range f.exits {
		if f.match(x.Date, x.Material, x.Category, filter) {
			out = append(out, x)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) ListStock(context.Context, repository.StockFilter) ([]repository.StockRow, error) {
	return f.stock, f.err
}

func (f *fakeAnalyticsRepo) SumPurchasedQuantity(context.Context) (int64, error) {
	var n int64
	for _, e := range f.entries {
		n += e.Quantity
	}
	return n, f.err
}

func (f *fakeAnalyticsRepo) CountEntriesBelow(_ context.Context, threshold int64) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.Quantity < threshold {
			n++
		}
	}
	return n, nil
}

func (f *fakeAnalyticsRepo) SumPurchaseCost(context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.entries {
		total = total.Add(e.Total)
	}
	return total, nil
}

func (f *fakeAnalyticsRepo) CountCategories(context.Context) (int64, error) { return 2, nil }

func day(d, m, y int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{
		entries: []*entity.Entry{
			{ID: 1, Material: "Bolt", UnitPrice: dec("2"), Quantity: 100, Total: dec("240"), Date: day(1, 1, 2024), Category: "Hırdavat", Supplier: "ACME"},
			{ID: 2, Material: "Kablo", UnitPrice: dec("5"), Quantity: 4, Total: dec("20"), Date: day(2, 1, 2024)},
			{ID: 3, Material: "Bolt", UnitPrice: dec("2.5"), Quantity: 10, Total: dec("25"), Date: day(15, 3, 2024), Category: "Hırdavat"},
		},
		exits: []*repository.ExitMovement{
			{Exit: entity.Exit{ID: 1, EntryID: 1, Material: "Bolt", Quantity: 30, Personnel: "Ayşe", Date: day(2, 1, 2024)}, UnitPrice: dec("2"), Category: "Hırdavat"},
			{Exit: entity.Exit{ID: 2, EntryID: 2, Material: "Kablo", Quantity: 1, Personnel: "Ali", Date: day(31, 1, 2024)}, UnitPrice: dec("5")},
		},
	}
}

func newReports(repo repository.AnalyticsRepository) *ReportUseCase {
	uc := NewReportUseCase(repo, 10)
	uc.now = func() time.Time { return time.Date(2024, time.January, 20, 15, 4, 5, 0, time.UTC) }
	return uc
}

func TestQueryMovements_OrderAndTotals(t *testing.T) {
	uc := newReports(sampleRepo())

	r, err := uc.QueryMovements(context.Background(), dto.MovementQuery{From: "01.01.2024", To: "31.12.2024"})
	require.NoError(t, err)

	require.Len(t, r.Rows, 5)
	got := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		got = append(got, row.Date+" "+row.Direction+" "+row.Material)
	}
	assert.Equal(t, []string{
		"15.03.2024 in Bolt",
		"31.01.2024 out Kablo",
		"02.01.2024 in Kablo",
		"02.01.2024 out Bolt",
		"01.01.2024 in Bolt",
	}, got)

	assert.EqualValues(t, 114, r.TotalIn)
	assert.EqualValues(t, 31, r.TotalOut)
	assert.True(t, dec("285").Equal(r.TotalInCost))

	out := r.Rows[3]
	assert.True(t, dec("60").Equal(out.Total), "costo de salida = cantidad * precio de origen")
	assert.EqualValues(t, 1, out.EntryID)
	assert.Equal(t, "Ayşe", out.Personnel)
	assert.Equal(t, Uncategorized, r.Rows[2].Category)
}

func TestQueryMovements_DefaultRangeIsCurrentMonth(t *testing.T) {
	repo := sampleRepo()
	uc := newReports(repo)

	r, err := uc.QueryMovements(context.Background(), dto.MovementQuery{})
	require.NoError(t, err)

	assert.Equal(t, "01.01.2024", r.From)
	assert.Equal(t, "20.01.2024", r.To)
	assert.Equal(t, day(1, 1, 2024), repo.lastMovementFilter.From)
	assert.Len(t, r.Rows, 3) // 31.01 queda fuera
}

func TestQueryMovements_DirectionAndFilters(t *testing.T) {
	uc := newReports(sampleRepo())
	ctx := context.Background()

	r, err := uc.QueryMovements(ctx, dto.MovementQuery{From: "01.01.2024", To: "31.12.2024", Direction: "out"})
	require.NoError(t, err)
	assert.Len(t, r.Rows, 2)
	assert.Zero(t, r.TotalIn)
	assert.EqualValues(t, 31, r.TotalOut)

	r, err = uc.QueryMovements(ctx, dto.MovementQuery{From: "01.01.2024", To: "31.12.2024", Category: "Hırdavat", Direction: "in"})
	require.NoError(t, err)
	assert.Len(t, r.Rows, 2)
}

func TestQueryMovements_InvalidInput(t *testing.T) {
	uc := newReports(sampleRepo())
	ctx := context.Background()

	_, err := uc.QueryMovements(ctx, dto.MovementQuery{From: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.QueryMovements(ctx, dto.MovementQuery{From: "10.01.2024", To: "01.01.2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.QueryMovements(ctx, dto.MovementQuery{Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryMovements_Idempotent(t *testing.T) {
	uc := newReports(sampleRepo())
	q := dto.MovementQuery{From: "01.01.2024", To: "31.12.2024"}

	a, err := uc.QueryMovements(context.Background(), q)
	require.NoError(t, err)
	b, err := uc.QueryMovements(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQueryMovements_RepoError(t *testing.T) {
	repo := sampleRepo()
	repo.err = domain.Storage("list", errors.New("locked"))

	_, err := newReports(repo).QueryMovements(context.Background(), dto.MovementQuery{})
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestQueryStock_FlagsLowAndFilters(t *testing.T) {
	repo := &fakeAnalyticsRepo{stock: []repository.StockRow{
		{Material: "Bolt", Total: 70, UnitPrice: dec("2.5"), Category: "Hırdavat", LastEntry: day(15, 3, 2024)},
		{Material: "Kablo", Total: 3, UnitPrice: dec("5"), LastEntry: day(2, 1, 2024)},
	}}
	uc := newReports(repo)
	ctx := context.Background()

	r, err := uc.QueryStock(ctx, dto.StockQuery{})
	require.NoError(t, err)
	require.Len(t, r.Rows, 2)
	assert.False(t, r.Rows[0].Low)
	assert.True(t, r.Rows[1].Low)
	assert.True(t, dec("175").Equal(r.Rows[0].Value))
	assert.Equal(t, "15.03.2024", r.Rows[0].LastEntry)
	assert.Equal(t, Uncategorized, r.Rows[1].Category)
	assert.EqualValues(t, 73, r.TotalQuantity)
	assert.True(t, dec("190").Equal(r.TotalValue))
	assert.Equal(t, 1, r.LowCount)

	r, err = uc.QueryStock(ctx, dto.StockQuery{Status: "low"})
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "Kablo", r.Rows[0].Material)

	r, err = uc.QueryStock(ctx, dto.StockQuery{Status: "normal"})
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "Bolt", r.Rows[0].Material)
}

func TestQueryMonthly_BucketsByCalendarMonth(t *testing.T) {
	uc := newReports(sampleRepo())

	r, err := uc.QueryMonthly(context.Background(), dto.MonthlyQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2024, r.Year)
	require.Len(t, r.Months, 12)
	jan, mar := r.Months[0], r.Months[2]
	assert.Equal(t, "Enero", jan.Label)
	assert.EqualValues(t, 104, jan.In)
	assert.EqualValues(t, 31, jan.Out)
	assert.EqualValues(t, 73, jan.Net)
	assert.True(t, dec("260").Equal(jan.InCost))
	assert.EqualValues(t, 10, mar.In)
	assert.Zero(t, r.Months[1].In)

	assert.EqualValues(t, 114, r.Total.In)
	assert.EqualValues(t, 31, r.Total.Out)
	assert.EqualValues(t, 83, r.Total.Net)
	assert.True(t, dec("285").Equal(r.Total.InCost))
}

func TestQueryMonthly_EmptyYear(t *testing.T) {
	r, err := newReports(sampleRepo()).QueryMonthly(context.Background(), dto.MonthlyQuery{Year: 2023})
	require.NoError(t, err)
	assert.Zero(t, r.Total.In)
	assert.True(t, MonthlyTable(r).Empty())
}

func TestDashboard_GetSummary(t *testing.T) {
	uc := NewDashboardUseCase(sampleRepo(), 10)

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 114, s.TotalQuantity)
	assert.EqualValues(t, 1, s.LowStockEntries)
	assert.True(t, dec("285").Equal(s.TotalCost))
	assert.EqualValues(t, 2, s.CategoryCount)
}

func TestDashboard_PropagatesError(t *testing.T) {
	repo := sampleRepo()
	repo.err = domain.Storage("sum", errors.New("boom"))

	_, err := NewDashboardUseCase(repo, 10).GetSummary(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
}
