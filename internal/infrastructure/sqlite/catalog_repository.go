package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// categoryUnion categorías explícitas más las usadas en entradas.
const categoryUnion = `
SELECT name FROM categories
UNION
SELECT category FROM material_entries WHERE category IS NOT NULL AND category <> ''`

// CatalogRepository implementación de repository.CatalogRepository.
type CatalogRepository struct {
	c Conn
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository construye el repositorio.
func NewCatalogRepository(c Conn) *CatalogRepository {
	return &CatalogRepository{c: c}
}

// AddCategory inserta la categoría si no existe.
func (r *CatalogRepository) AddCategory(ctx context.Context, name string) error {
	return r.c.Do(ctx, func(db *gorm.DB) error {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categoryModel{Name: name}).Error
		return domain.Storage("add category", err)
	})
}

// RemoveCategory deja sin categoría las entradas y borra la fila, en una transacción.
func (r *CatalogRepository) RemoveCategory(ctx context.Context, name string) error {
	return r.c.Do(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			upd := tx.Model(&entryModel{}).Where("category = ?", name).Update("category", nil)
			if upd.Error != nil {
				return domain.Storage("clear category", upd.Error)
			}
			del := tx.Where("name = ?", name).Delete(&categoryModel{})
			if del.Error != nil {
				return domain.Storage("delete category", del.Error)
			}
			if upd.RowsAffected == 0 && del.RowsAffected == 0 {
				return fmt.Errorf("%w: categoría %q", domain.ErrNotFound, name)
			}
			return nil
		})
	})
}

// ListCategories unión ordenada de categorías.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		return domain.Storage("list categories", db.Raw(categoryUnion+" ORDER BY 1").Scan(&out).Error)
	})
	return out, err
}

// DistinctMaterials materiales con entradas cuyo nombre contiene q.
func (r *CatalogRepository) DistinctMaterials(ctx context.Context, q string, limit int) ([]string, error) {
	return r.distinct(ctx, "material", q, limit)
}

// DistinctSuppliers proveedores cuyo nombre contiene q.
func (r *CatalogRepository) DistinctSuppliers(ctx context.Context, q string, limit int) ([]string, error) {
	return r.distinct(ctx, "supplier", q, limit)
}

// distinct column viene de una lista fija (material, supplier).
func (r *CatalogRepository) distinct(ctx context.Context, column, q string, limit int) ([]string, error) {
	var out []string
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		query := db.Model(&entryModel{}).
			Distinct().
			Where(column + " IS NOT NULL AND " + column + " <> ''")
		if q != "" {
			query = query.Where(column+` LIKE ? ESCAPE '\'`, likePattern(q))
		}
		err := query.Order(column + " ASC").Limit(limit).Pluck(column, &out).Error
		return domain.Storage("distinct "+column, err)
	})
	return out, err
}
