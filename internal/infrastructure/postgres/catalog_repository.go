package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
)

const categoryUnion = `
SELECT name FROM categories
UNION
SELECT category FROM material_entries WHERE category IS NOT NULL AND category <> ''`

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository. Necesita el pool para abrir su propia transacción.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador de catálogo.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// AddCategory inserta la categoría; si ya existe no hace nada.
func (r *CatalogRepo) AddCategory(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO categories (name) VALUES ($1)`, name)
	if isUniqueViolation(err) {
		return nil
	}
	return domain.Storage("add category", err)
}

// RemoveCategory deja sin categoría las entradas y borra la fila.
func (r *CatalogRepo) RemoveCategory(ctx context.Context, name string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Storage("begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	upd, err := tx.Exec(ctx, `UPDATE material_entries SET category = NULL WHERE category = $1`, name)
	if err != nil {
		return domain.Storage("clear category", err)
	}
	del, err := tx.Exec(ctx, `DELETE FROM categories WHERE name = $1`, name)
	if err != nil {
		return domain.Storage("delete category", err)
	}
	if upd.RowsAffected() == 0 && del.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %q", domain.ErrNotFound, name)
	}
	return domain.Storage("commit", tx.Commit(ctx))
}

// ListCategories unión ordenada de categorías.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]string, error) {
	return r.strings(ctx, "list categories", categoryUnion+` ORDER BY 1`)
}

// DistinctMaterials materiales con entradas cuyo nombre contiene q (sin distinguir mayúsculas).
func (r *CatalogRepo) DistinctMaterials(ctx context.Context, q string, limit int) ([]string, error) {
	return r.distinct(ctx, "material", q, limit)
}

// DistinctSuppliers proveedores cuyo nombre contiene q.
func (r *CatalogRepo) DistinctSuppliers(ctx context.Context, q string, limit int) ([]string, error) {
	return r.distinct(ctx, "supplier", q, limit)
}

// distinct column viene de una lista fija (material, supplier).
func (r *CatalogRepo) distinct(ctx context.Context, column, q string, limit int) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s FROM material_entries
		WHERE %[1]s IS NOT NULL AND %[1]s <> '' AND %[1]s ILIKE $1 ESCAPE '\'
		ORDER BY %[1]s
		LIMIT $2`, column)
	return r.strings(ctx, "distinct "+column, query, likePattern(q), limit)
}

func (r *CatalogRepo) strings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, domain.Storage(op, err)
		}
		out = append(out, s)
	}
	return out, domain.Storage(op, rows.Err())
}
