package usecase

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalog struct {
	categories map[string]bool
	materials  []string
	suppliers  []string
}

func (m *memCatalog) AddCategory(_ context.Context, name string) error {
	m.categories[name] = true
	return nil
}

func (m *memCatalog) RemoveCategory(_ context.Context, name string) error {
	if !m.categories[name] {
		return domain.ErrNotFound
	}
	delete(m.categories, name)
	return nil
}

func (m *memCatalog) ListCategories(context.Context) ([]string, error) {
	var out []string
	for c := range m.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func contains(values []string, q string, limit int) []string {
	var out []string
	for _, v := range values {
		if strings.Contains(v, q) && len(out) < limit {
			out = append(out, v)
		}
	}
	return out
}

func (m *memCatalog) DistinctMaterials(_ context.Context, q string, limit int) ([]string, error) {
	return contains(m.materials, q, limit), nil
}

func (m *memCatalog) DistinctSuppliers(_ context.Context, q string, limit int) ([]string, error) {
	return contains(m.suppliers, q, limit), nil
}

type memStockLevels map[string]int64

func (m memStockLevels) Get(_ context.Context, material string) (*entity.StockLevel, error) {
	total, ok := m[material]
	if !ok {
		return nil, nil
	}
	return &entity.StockLevel{Material: material, Total: total}, nil
}

func (m memStockLevels) Increase(context.Context, string, int64) error { return nil }
func (m memStockLevels) Decrease(context.Context, string, int64) error { return nil }

func (m memStockLevels) ListAvailable(context.Context) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for k, v := range m {
		if v > 0 {
			out = append(out, &entity.StockLevel{Material: k, Total: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Material < out[j].Material })
	return out, nil
}

func newCatalog() *CatalogUseCase {
	return NewCatalogUseCase(
		&memCatalog{categories: map[string]bool{}, materials: []string{"Bolt", "Boya", "Kablo"}},
		memStockLevels{"Bolt": 70, "Kablo": 0, "Boya": 3},
	)
}

func TestCatalog_Categories(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	require.NoError(t, uc.AddCategory(ctx, dto.CategoryRequest{Name: "  Elektrik "}))
	require.NoError(t, uc.AddCategory(ctx, dto.CategoryRequest{Name: "Boya"}))
	assert.ErrorIs(t, uc.AddCategory(ctx, dto.CategoryRequest{Name: "   "}), domain.ErrInvalidInput)

	list, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Boya", "Elektrik"}, list)

	require.NoError(t, uc.RemoveCategory(ctx, "Elektrik"))
	assert.ErrorIs(t, uc.RemoveCategory(ctx, "Elektrik"), domain.ErrNotFound)
}

func TestCatalog_Lookups(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	got, err := uc.Materials(ctx, " Bo ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bolt", "Boya"}, got)

	got, err = uc.Suppliers(ctx, "x")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalog_Stock(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	levels, err := uc.AvailableStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.StockLevelDTO{{Material: "Bolt", Total: 70}, {Material: "Boya", Total: 3}}, levels)

	one, err := uc.StockOf(ctx, "Kablo")
	require.NoError(t, err)
	assert.Zero(t, one.Total)

	_, err = uc.StockOf(ctx, "Yok")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
