package sqlite

import (
	"time"

	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// entryModel fila de material_entries. Los decimales se guardan como TEXT para no perder precisión.
type entryModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Material  string          `gorm:"size:255;not null;index:idx_entries_material_date,priority:1"`
	UnitPrice decimal.Decimal `gorm:"type:text;not null"`
	Quantity  int64           `gorm:"not null"`
	TaxRate   decimal.Decimal `gorm:"type:text;not null"`
	Total     decimal.Decimal `gorm:"type:text;not null"`
	Date      time.Time       `gorm:"type:datetime;not null;index:idx_entries_material_date,priority:2"`
	Category  *string         `gorm:"size:255;index"`
	Supplier  *string         `gorm:"size:255"`
}

func (entryModel) TableName() string { return "material_entries" }

// exitModel fila de material_exits.
type exitModel struct {
	ID        int64       `gorm:"primaryKey;autoIncrement"`
	EntryID   int64       `gorm:"not null;index"`
	Entry     *entryModel `gorm:"foreignKey:EntryID;constraint:OnDelete:RESTRICT"`
	Material  string      `gorm:"size:255;not null;index"`
	Quantity  int64       `gorm:"not null"`
	Personnel string      `gorm:"size:255;not null"`
	Date      time.Time   `gorm:"type:datetime;not null;index"`
}

func (exitModel) TableName() string { return "material_exits" }

// stockLevelModel fila de stock_levels (una por material).
type stockLevelModel struct {
	Material string `gorm:"primaryKey;size:255"`
	Total    int64  `gorm:"not null"`
}

func (stockLevelModel) TableName() string { return "stock_levels" }

type categoryModel struct {
	Name string `gorm:"primaryKey;size:255"`
}

func (categoryModel) TableName() string { return "categories" }

// allModels en orden de creación; el borrado usa el orden inverso.
var allModels = []any{&entryModel{}, &exitModel{}, &stockLevelModel{}, &categoryModel{}}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toEntryModel(e *entity.Entry) *entryModel {
	return &entryModel{
		ID:        e.ID,
		Material:  e.Material,
		UnitPrice: e.UnitPrice,
		Quantity:  e.Quantity,
		TaxRate:   e.TaxRate,
		Total:     e.Total,
		Date:      e.Date.UTC(),
		Category:  optional(e.Category),
		Supplier:  optional(e.Supplier),
	}
}

func (m *entryModel) toEntity() *entity.Entry {
	return &entity.Entry{
		ID:        m.ID,
		Material:  m.Material,
		UnitPrice: m.UnitPrice,
		Quantity:  m.Quantity,
		TaxRate:   m.TaxRate,
		Total:     m.Total,
		Date:      m.Date.UTC(),
		Category:  deref(m.Category),
		Supplier:  deref(m.Supplier),
	}
}

func toExitModel(x *entity.Exit) *exitModel {
	return &exitModel{
		ID:        x.ID,
		EntryID:   x.EntryID,
		Material:  x.Material,
		Quantity:  x.Quantity,
		Personnel: x.Personnel,
		Date:      x.Date.UTC(),
	}
}

func (m *exitModel) toEntity() *entity.Exit {
	return &entity.Exit{
		ID:        m.ID,
		EntryID:   m.EntryID,
		Material:  m.Material,
		Quantity:  m.Quantity,
		Personnel: m.Personnel,
		Date:      m.Date.UTC(),
	}
}
