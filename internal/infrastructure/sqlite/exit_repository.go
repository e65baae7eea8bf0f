package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"gorm.io/gorm"
)

// ExitRepository implementación de repository.ExitRepository sobre material_exits.
type ExitRepository struct {
	c Conn
}

var _ repository.ExitRepository = (*ExitRepository)(nil)

// NewExitRepository construye el repositorio.
func NewExitRepository(c Conn) *ExitRepository {
	return &ExitRepository{c: c}
}

// Create inserta la salida y asigna su ID.
func (r *ExitRepository) Create(ctx context.Context, x *entity.Exit) error {
	return r.c.Do(ctx, func(db *gorm.DB) error {
		m := toExitModel(x)
		m.ID = 0
		if err := db.Create(m).Error; err != nil {
			return domain.Storage("create exit", err)
		}
		x.ID = m.ID
		return nil
	})
}

// GetByID obtiene una salida por ID.
func (r *ExitRepository) GetByID(ctx context.Context, id int64) (*entity.Exit, error) {
	var out *entity.Exit
	err := r.c.Do(ctx, func(db *gorm.DB) error {
		var m exitModel
		if err := db.First(&m, id).Error; err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: salida %d", domain.ErrNotFound, id)
			}
			return domain.Storage("get exit", err)
		}
		out = m.toEntity()
		return nil
	})
	return out, err
}
