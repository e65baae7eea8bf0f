package repository

import (
	"context"

	"github.com/jhoicas/stok-takip/internal/domain/entity"
)

// EntryRepository define el puerto de persistencia para las entradas de material.
type EntryRepository interface {
	// Create inserta la entrada y asigna entry.ID.
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id int64) (*entity.Entry, error)
	// OldestWithBalance devuelve la entrada más antigua del material con cantidad > 0
	// (fecha ASC, id ASC). nil, nil si no hay ninguna.
	OldestWithBalance(ctx context.Context, material string) (*entity.Entry, error)
}
