package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el total del material; nil si no tiene fila.
// Bloquea la fila (FOR UPDATE) para que la comprobación de stock y el descuento sean atómicos.
func (r *StockRepo) Get(ctx context.Context, material string) (*entity.StockLevel, error) {
	query := `SELECT material, total FROM stock_levels WHERE material = $1 FOR UPDATE`
	var s entity.StockLevel
	if err := r.q.QueryRow(ctx, query, material).Scan(&s.Material, &s.Total); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Storage("get stock", err)
	}
	return &s, nil
}

// Increase inserta la fila o suma qty al total existente.
func (r *StockRepo) Increase(ctx context.Context, material string, qty int64) error {
	query := `
		INSERT INTO stock_levels (material, total)
		VALUES ($1, $2)
		ON CONFLICT (material)
		DO UPDATE SET total = stock_levels.total + EXCLUDED.total`
	_, err := r.q.Exec(ctx, query, material, qty)
	return domain.Storage("increase stock", err)
}

// Decrease resta qty al total del material.
func (r *StockRepo) Decrease(ctx context.Context, material string, qty int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_levels SET total = total - $2 WHERE material = $1`, material, qty)
	if err != nil {
		return domain.Storage("decrease stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock de %q", domain.ErrNotFound, material)
	}
	return nil
}

// ListAvailable materiales con total > 0 ordenados por nombre.
func (r *StockRepo) ListAvailable(ctx context.Context) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, `SELECT material, total FROM stock_levels WHERE total > 0 ORDER BY material`)
	if err != nil {
		return nil, domain.Storage("list stock", err)
	}
	defer rows.Close()

	var out []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.Material, &s.Total); err != nil {
			return nil, domain.Storage("scan stock", err)
		}
		out = append(out, &s)
	}
	return out, domain.Storage("list stock", rows.Err())
}
