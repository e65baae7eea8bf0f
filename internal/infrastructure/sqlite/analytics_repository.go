package sqlite

import (
	"context"
	"time"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsRepository consultas read-only para reportes y dashboard.
type AnalyticsRepository struct {
	c Conn
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(c Conn) *AnalyticsRepository {
	return &AnalyticsRepository{c: c}
}

// ListEntryMovements entradas del rango [From, To] que cumplen el filtro.
func (r *AnalyticsRepository) ListEntryMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.Entry, error) {
	var out []*entity.Entry
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		q := db.Where("date BETWEEN ? AND ?", f.From.UTC(), f.To.UTC())
		if f.Category != "" {
			q = q.Where("category = ?", f.Category)
		}
		if f.Material != "" {
			q = q.Where(`material LIKE ? ESCAPE '\'`, likePattern(f.Material))
		}
		var rows []entryModel
		if err := q.Order("date DESC, id DESC").Find(&rows).Error; err != nil {
			return domain.Storage("list entry movements", err)
		}
		for i := range rows {
			out = append(out, rows[i].toEntity())
		}
		return nil
	})
	return out, err
}

type exitMovementRow struct {
	ID        int64
	EntryID   int64
	Material  string
	Quantity  int64
	Personnel string
	Date      time.Time
	UnitPrice decimal.NullDecimal
	Category  *string
}

// ListExitMovements salidas del rango unidas a su entrada de origen.
// El filtro de categoría aplica a la entrada de origen.
func (r *AnalyticsRepository) ListExitMovements(ctx context.Context, f repository.MovementFilter) ([]*repository.ExitMovement, error) {
	var out []*repository.ExitMovement
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		q := db.Table("material_exits AS x").
			Select("x.id, x.entry_id, x.material, x.quantity, x.personnel, x.date, e.unit_price, e.category").
			Joins("LEFT JOIN material_entries AS e ON e.id = x.entry_id").
			Where("x.date BETWEEN ? AND ?", f.From.UTC(), f.To.UTC())
		if f.Category != "" {
			q = q.Where("e.category = ?", f.Category)
		}
		if f.Material != "" {
			q = q.Where(`x.material LIKE ? ESCAPE '\'`, likePattern(f.Material))
		}
		var rows []exitMovementRow
		if err := q.Order("x.date DESC, x.id DESC").Scan(&rows).Error; err != nil {
			return domain.Storage("list exit movements", err)
		}
		for _, row := range rows {
			out = append(out, &repository.ExitMovement{
				Exit: entity.Exit{
					ID:        row.ID,
					EntryID:   row.EntryID,
					Material:  row.Material,
					Quantity:  row.Quantity,
					Personnel: row.Personnel,
					Date:      row.Date.UTC(),
				},
				UnitPrice: row.UnitPrice.Decimal,
				Category:  deref(row.Category),
			})
		}
		return nil
	})
	return out, err
}

// ListStock niveles con total > 0 unidos a la última entrada (fecha DESC, id DESC) de cada material.
func (r *AnalyticsRepository) ListStock(ctx context.Context, f repository.StockFilter) ([]repository.StockRow, error) {
	var out []repository.StockRow
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		q := db.Model(&stockLevelModel{}).Where("total > 0")
		if f.Material != "" {
			q = q.Where(`material LIKE ? ESCAPE '\'`, likePattern(f.Material))
		}
		if f.Category != "" {
			q = q.Where("EXISTS (SELECT 1 FROM material_entries e WHERE e.material = stock_levels.material AND e.category = ?)", f.Category)
		}
		var levels []stockLevelModel
		if err := q.Order("material ASC").Find(&levels).Error; err != nil {
			return domain.Storage("list stock", err)
		}
		if len(levels) == 0 {
			return nil
		}

		names := make([]string, 0, len(levels))
		for _, l := range levels {
			names = append(names, l.Material)
		}
		var entries []entryModel
		err := db.Where("material IN ?", names).
			Order("material ASC, date DESC, id DESC").
			Find(&entries).Error
		if err != nil {
			return domain.Storage("latest entries", err)
		}
		latest := make(map[string]*entryModel, len(levels))
		for i := range entries {
			if _, ok := latest[entries[i].Material]; !ok {
				latest[entries[i].Material] = &entries[i]
			}
		}

		for _, l := range levels {
			row := repository.StockRow{Material: l.Material, Total: l.Total, UnitPrice: decimal.Zero}
			if e, ok := latest[l.Material]; ok {
				row.UnitPrice = e.UnitPrice
				row.Supplier = deref(e.Supplier)
				row.Category = deref(e.Category)
				row.LastEntry = e.Date.UTC()
			}
			out = append(out, row)
		}
		return nil
	})
	return out, err
}

// SumPurchasedQuantity Σ cantidad de todas las entradas.
func (r *AnalyticsRepository) SumPurchasedQuantity(ctx context.Context) (int64, error) {
	var n int64
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		err := db.Model(&entryModel{}).Select("COALESCE(SUM(quantity), 0)").Scan(&n).Error
		return domain.Storage("sum quantity", err)
	})
	return n, err
}

// CountEntriesBelow entradas con cantidad < threshold.
func (r *AnalyticsRepository) CountEntriesBelow(ctx context.Context, threshold int64) (int64, error) {
	var n int64
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		err := db.Model(&entryModel{}).Where("quantity < ?", threshold).Count(&n).Error
		return domain.Storage("count low entries", err)
	})
	return n, err
}

// SumPurchaseCost Σ total de las entradas. Se suma en Go: la columna es TEXT decimal.
func (r *AnalyticsRepository) SumPurchaseCost(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		var totals []string
		if err := db.Model(&entryModel{}).Pluck("total", &totals).Error; err != nil {
			return domain.Storage("sum cost", err)
		}
		for _, s := range totals {
			d, err := decimal.NewFromString(s)
			if err != nil {
				return domain.Storage("sum cost", err)
			}
			total = total.Add(d)
		}
		return nil
	})
	return total, err
}

// CountCategories cantidad de categorías distintas (explícitas o usadas en entradas).
func (r *AnalyticsRepository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		err := db.Raw("SELECT COUNT(*) FROM (" + categoryUnion + ")").Scan(&n).Error
		return domain.Storage("count categories", err)
	})
	return n, err
}
