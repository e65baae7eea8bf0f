package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para reportes y dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analytics.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// where acumula condiciones con placeholders numerados.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// ListEntryMovements entradas del rango [From, To] que cumplen el filtro.
func (r *AnalyticsRepo) ListEntryMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.Entry, error) {
	w := &where{}
	w.add("date >= $%d", f.From.UTC())
	w.add("date <= $%d", f.To.UTC())
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.Material != "" {
		w.add(`material ILIKE $%d ESCAPE '\'`, likePattern(f.Material))
	}

	rows, err := r.q.Query(ctx, `SELECT `+entryColumns+` FROM material_entries`+w.String()+` ORDER BY date DESC, id DESC`, w.args...)
	if err != nil {
		return nil, domain.Storage("list entry movements", err)
	}
	defer rows.Close()

	var out []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, domain.Storage("scan entry", err)
		}
		out = append(out, e)
	}
	return out, domain.Storage("list entry movements", rows.Err())
}

// ListExitMovements salidas del rango unidas a su entrada de origen.
func (r *AnalyticsRepo) ListExitMovements(ctx context.Context, f repository.MovementFilter) ([]*repository.ExitMovement, error) {
	w := &where{}
	w.add("x.date >= $%d", f.From.UTC())
	w.add("x.date <= $%d", f.To.UTC())
	if f.Category != "" {
		w.add("e.category = $%d", f.Category)
	}
	if f.Material != "" {
		w.add(`x.material ILIKE $%d ESCAPE '\'`, likePattern(f.Material))
	}

	query := `
		SELECT x.id, x.entry_id, x.material, x.quantity, x.personnel, x.date,
		       COALESCE(e.unit_price, 0), e.category
		FROM material_exits x
		LEFT JOIN material_entries e ON e.id = x.entry_id` + w.String() + `
		ORDER BY x.date DESC, x.id DESC`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, domain.Storage("list exit movements", err)
	}
	defer rows.Close()

	var out []*repository.ExitMovement
	for rows.Next() {
		var (
			m        repository.ExitMovement
			category *string
		)
		if err := rows.Scan(&m.ID, &m.EntryID, &m.Material, &m.Quantity, &m.Personnel, &m.Date, &m.UnitPrice, &category); err != nil {
			return nil, domain.Storage("scan exit", err)
		}
		m.Date = m.Date.UTC()
		m.Category = deref(category)
		out = append(out, &m)
	}
	return out, domain.Storage("list exit movements", rows.Err())
}

// ListStock niveles con total > 0 unidos a la última entrada (fecha DESC, id DESC) de cada material.
func (r *AnalyticsRepo) ListStock(ctx context.Context, f repository.StockFilter) ([]repository.StockRow, error) {
	w := &where{conds: []string{"s.total > 0"}}
	if f.Material != "" {
		w.add(`s.material ILIKE $%d ESCAPE '\'`, likePattern(f.Material))
	}
	if f.Category != "" {
		w.add("EXISTS (SELECT 1 FROM material_entries c WHERE c.material = s.material AND c.category = $%d)", f.Category)
	}

	query := `
		SELECT s.material, s.total, COALESCE(l.unit_price, 0), l.supplier, l.category, l.date
		FROM stock_levels s
		LEFT JOIN LATERAL (
			SELECT unit_price, supplier, category, date
			FROM material_entries e
			WHERE e.material = s.material
			ORDER BY e.date DESC, e.id DESC
			LIMIT 1
		) l ON TRUE` + w.String() + `
		ORDER BY s.material`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, domain.Storage("list stock", err)
	}
	defer rows.Close()

	var out []repository.StockRow
	for rows.Next() {
		var (
			row                repository.StockRow
			supplier, category *string
			last               *time.Time
		)
		if err := rows.Scan(&row.Material, &row.Total, &row.UnitPrice, &supplier, &category, &last); err != nil {
			return nil, domain.Storage("scan stock", err)
		}
		row.Supplier = deref(supplier)
		row.Category = deref(category)
		if last != nil {
			row.LastEntry = last.UTC()
		}
		out = append(out, row)
	}
	return out, domain.Storage("list stock", rows.Err())
}

// SumPurchasedQuantity Σ cantidad de todas las entradas.
func (r *AnalyticsRepo) SumPurchasedQuantity(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0)::BIGINT FROM material_entries`).Scan(&n)
	return n, domain.Storage("sum quantity", err)
}

// CountEntriesBelow entradas con cantidad < threshold.
func (r *AnalyticsRepo) CountEntriesBelow(ctx context.Context, threshold int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM material_entries WHERE quantity < $1`, threshold).Scan(&n)
	return n, domain.Storage("count low entries", err)
}

// SumPurchaseCost Σ total de las entradas.
func (r *AnalyticsRepo) SumPurchaseCost(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM material_entries`).Scan(&total)
	return total, domain.Storage("sum cost", err)
}

// CountCategories cantidad de categorías distintas.
func (r *AnalyticsRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM (`+categoryUnion+`) c`).Scan(&n)
	return n, domain.Storage("count categories", err)
}
