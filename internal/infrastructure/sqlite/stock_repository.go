package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository implementación de repository.StockRepository sobre stock_levels.
type StockRepository struct {
	c Conn
}

var _ repository.StockRepository = (*StockRepository)(nil)

// NewStockRepository construye el repositorio.
func NewStockRepository(c Conn) *StockRepository {
	return &StockRepository{c: c}
}

// Get devuelve nil, nil si el material no tiene fila.
func (r *StockRepository) Get(ctx context.Context, material string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		var rows []stockLevelModel
		if err := db.Where("material = ?", material).Limit(1).Find(&rows).Error; err != nil {
			return domain.Storage("get stock", err)
		}
		if len(rows) > 0 {
			out = &entity.StockLevel{Material: rows[0].Material, Total: rows[0].Total}
		}
		return nil
	})
	return out, err
}

// Increase upsert: crea la fila con qty o suma qty al total existente.
func (r *StockRepository) Increase(ctx context.Context, material string, qty int64) error {
	return r.c.Do(ctx, func(db *gorm.DB) error {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "material"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total": gorm.Expr("stock_levels.total + excluded.total"),
			}),
		}).Create(&stockLevelModel{Material: material, Total: qty}).Error
		return domain.Storage("increase stock", err)
	})
}

// Decrease resta qty al total del material.
func (r *StockRepository) Decrease(ctx context.Context, material string, qty int64) error {
	return r.c.Do(ctx, func(db *gorm.DB) error {
		res := db.Model(&stockLevelModel{}).
			Where("material = ?", material).
			Update("total", gorm.Expr("total - ?", qty))
		if res.Error != nil {
			return domain.Storage("decrease stock", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: stock de %q", domain.ErrNotFound, material)
		}
		return nil
	})
}

// ListAvailable materiales con total > 0 ordenados por nombre.
func (r *StockRepository) ListAvailable(ctx context.Context) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		var rows []stockLevelModel
		if err := db.Where("total > 0").Order("material ASC").Find(&rows).Error; err != nil {
			return domain.Storage("list stock", err)
		}
		for _, m := range rows {
			out = append(out, &entity.StockLevel{Material: m.Material, Total: m.Total})
		}
		return nil
	})
	return out, err
}
