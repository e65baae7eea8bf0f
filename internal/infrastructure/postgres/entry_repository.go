package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository sobre PostgreSQL (usable con pool o tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador de entradas. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `id, material, unit_price, quantity, tax_rate, total, date, category, supplier`

func scanEntry(row interface{ Scan(dest ...any) error }) (*entity.Entry, error) {
	var (
		e                  entity.Entry
		category, supplier *string
	)
	if err := row.Scan(&e.ID, &e.Material, &e.UnitPrice, &e.Quantity, &e.TaxRate, &e.Total, &e.Date, &category, &supplier); err != nil {
		return nil, err
	}
	e.Date = e.Date.UTC()
	e.Category = deref(category)
	e.Supplier = deref(supplier)
	return &e, nil
}

// Create inserta la entrada y asigna el ID generado.
func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	query := `
		INSERT INTO material_entries (material, unit_price, quantity, tax_rate, total, date, category, supplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.Material, e.UnitPrice, e.Quantity, e.TaxRate, e.Total, e.Date.UTC(),
		optional(e.Category), optional(e.Supplier),
	).Scan(&e.ID)
	return domain.Storage("create entry", err)
}

// GetByID obtiene una entrada por ID.
func (r *EntryRepo) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM material_entries WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: entrada %d", domain.ErrNotFound, id)
		}
		return nil, domain.Storage("get entry", err)
	}
	return e, nil
}

// OldestWithBalance entrada más antigua del material con cantidad > 0 (fecha ASC, id ASC).
func (r *EntryRepo) OldestWithBalance(ctx context.Context, material string) (*entity.Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM material_entries
		WHERE material = $1 AND quantity > 0
		ORDER BY date ASC, id ASC
		LIMIT 1`
	e, err := scanEntry(r.q.QueryRow(ctx, query, material))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Storage("oldest entry", err)
	}
	return e, nil
}
