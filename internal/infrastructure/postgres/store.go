package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stok-takip/internal/application/maintenance"
	"github.com/jhoicas/stok-takip/internal/domain"
)

var _ maintenance.Store = (*Store)(nil)

// Store operaciones de mantenimiento sobre PostgreSQL.
// Las copias de seguridad de un servidor se hacen con pg_dump; aquí solo se soporta el vaciado.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el adaptador de mantenimiento.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Backup no está soportado con PostgreSQL.
func (s *Store) Backup(context.Context, string) error {
	return fmt.Errorf("%w: backup con postgres (use pg_dump)", domain.ErrUnsupported)
}

// Restore no está soportado con PostgreSQL.
func (s *Store) Restore(context.Context, string) error {
	return fmt.Errorf("%w: restore con postgres (use pg_restore)", domain.ErrUnsupported)
}

// Wipe vacía las tablas y reinicia las secuencias.
func (s *Store) Wipe(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE material_exits, material_entries, stock_levels, categories RESTART IDENTITY`)
	return domain.Storage("wipe", err)
}
