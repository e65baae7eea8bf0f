package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
)

var _ repository.ExitRepository = (*ExitRepo)(nil)

// ExitRepo implementación de ExitRepository sobre PostgreSQL.
type ExitRepo struct {
	q Querier
}

// NewExitRepository construye el adaptador de salidas.
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

// Create inserta la salida y asigna el ID generado.
func (r *ExitRepo) Create(ctx context.Context, x *entity.Exit) error {
	query := `
		INSERT INTO material_exits (entry_id, material, quantity, personnel, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, x.EntryID, x.Material, x.Quantity, x.Personnel, x.Date.UTC()).Scan(&x.ID)
	return domain.Storage("create exit", err)
}

// GetByID obtiene una salida por ID.
func (r *ExitRepo) GetByID(ctx context.Context, id int64) (*entity.Exit, error) {
	query := `SELECT id, entry_id, material, quantity, personnel, date FROM material_exits WHERE id = $1`
	var x entity.Exit
	err := r.q.QueryRow(ctx, query, id).Scan(&x.ID, &x.EntryID, &x.Material, &x.Quantity, &x.Personnel, &x.Date)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: salida %d", domain.ErrNotFound, id)
		}
		return nil, domain.Storage("get exit", err)
	}
	x.Date = x.Date.UTC()
	return &x, nil
}
