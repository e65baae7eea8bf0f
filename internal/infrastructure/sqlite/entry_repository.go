package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"gorm.io/gorm"
)

// EntryRepository implementación de repository.EntryRepository sobre material_entries.
type EntryRepository struct {
	c Conn
}

var _ repository.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository construye el repositorio (Store o transacción).
func NewEntryRepository(c Conn) *EntryRepository {
	return &EntryRepository{c: c}
}

// Create inserta la entrada y asigna su ID autoincremental.
func (r *EntryRepository) Create(ctx context.Context, e *entity.Entry) error {
	return r.c.Do(ctx, func(db *gorm.DB) error {
		m := toEntryModel(e)
		m.ID = 0
		if err := db.Create(m).Error; err != nil {
			return domain.Storage("create entry", err)
		}
		e.ID = m.ID
		return nil
	})
}

// GetByID obtiene una entrada por ID.
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	var out *entity.Entry
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		var m entryModel
		if err := db.First(&m, id).Error; err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: entrada %d", domain.ErrNotFound, id)
			}
			return domain.Storage("get entry", err)
		}
		out = m.toEntity()
		return nil
	})
	return out, err
}

// OldestWithBalance entrada más antigua del material con cantidad > 0 (fecha ASC, id ASC).
func (r *EntryRepository) OldestWithBalance(ctx context.Context, material string) (*entity.Entry, error) {
	var out *entity.Entry
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		var rows []entryModel
		err := db.Where("material = ? AND quantity > 0", material).
			Order("date ASC, id ASC").
			Limit(1).
			Find(&rows).Error
		if err != nil {
			return domain.Storage("oldest entry", err)
		}
		if len(rows) > 0 {
			out = rows[0].toEntity()
		}
		return nil
	})
	return out, err
}
