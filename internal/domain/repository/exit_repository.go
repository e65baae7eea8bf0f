package repository

import (
	"context"

	"github.com/jhoicas/stok-takip/internal/domain/entity"
)

// ExitRepository define el puerto de persistencia para las salidas de material.
type ExitRepository interface {
	Create(ctx context.Context, exit *entity.Exit) error
	GetByID(ctx context.Context, id int64) (*entity.Exit, error)
}
