package repository

import (
	"context"

	"github.com/jhoicas/stok-takip/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el total corriente por material.
// Usado dentro de transacciones para garantizar consistencia con entradas y salidas.
type StockRepository interface {
	// Get devuelve nil, nil si el material no tiene fila de stock.
	Get(ctx context.Context, material string) (*entity.StockLevel, error)
	// Increase suma qty al total (crea la fila si no existe).
	Increase(ctx context.Context, material string, qty int64) error
	// Decrease resta qty al total. ErrNotFound si no existe la fila.
	Decrease(ctx context.Context, material string, qty int64) error
	// ListAvailable devuelve los materiales con total > 0 ordenados por nombre.
	ListAvailable(ctx context.Context) ([]*entity.StockLevel, error)
}
