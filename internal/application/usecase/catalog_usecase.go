package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
)

// lookupLimit máximo de sugerencias devueltas por el autocompletado.
const lookupLimit = 50

// CatalogUseCase categorías, autocompletado de materiales/proveedores y stock disponible para salidas.
type CatalogUseCase struct {
	repo      repository.CatalogRepository
	stockRepo repository.StockRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository, stockRepo repository.StockRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, stockRepo: stockRepo}
}

// AddCategory crea una categoría (idempotente).
func (uc *CatalogUseCase) AddCategory(ctx context.Context, in dto.CategoryRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return err
	}
	return uc.repo.AddCategory(ctx, in.Name)
}

// RemoveCategory elimina la categoría; las entradas que la usaban quedan sin categoría.
func (uc *CatalogUseCase) RemoveCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.InvalidField("name")
	}
	return uc.repo.RemoveCategory(ctx, name)
}

// ListCategories categorías conocidas ordenadas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return nonNil(uc.repo.ListCategories(ctx))
}

// Materials nombres de material que contienen q.
func (uc *CatalogUseCase) Materials(ctx context.Context, q string) ([]string, error) {
	return nonNil(uc.repo.DistinctMaterials(ctx, strings.TrimSpace(q), lookupLimit))
}

// Suppliers proveedores que contienen q.
func (uc *CatalogUseCase) Suppliers(ctx context.Context, q string) ([]string, error) {
	return nonNil(uc.repo.DistinctSuppliers(ctx, strings.TrimSpace(q), lookupLimit))
}

// AvailableStock materiales con stock > 0 (lista del formulario de salida).
func (uc *CatalogUseCase) AvailableStock(ctx context.Context) ([]dto.StockLevelDTO, error) {
	levels, err := uc.stockRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelDTO, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelDTO{Material: l.Material, Total: l.Total})
	}
	return out, nil
}

// StockOf total corriente de un material. ErrNotFound si nunca tuvo entradas.
func (uc *CatalogUseCase) StockOf(ctx context.Context, material string) (*dto.StockLevelDTO, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, domain.InvalidField("material")
	}
	level, err := uc.stockRepo.Get(ctx, material)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, fmt.Errorf("%w: material %q", domain.ErrNotFound, material)
	}
	return &dto.StockLevelDTO{Material: level.Material, Total: level.Total}, nil
}

func nonNil(items []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
