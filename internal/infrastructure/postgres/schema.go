package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS material_entries (
		id         BIGSERIAL PRIMARY KEY,
		material   TEXT      NOT NULL,
		unit_price NUMERIC   NOT NULL CHECK (unit_price >= 0),
		quantity   BIGINT    NOT NULL,
		tax_rate   NUMERIC   NOT NULL CHECK (tax_rate >= 0),
		total      NUMERIC   NOT NULL,
		date       DATE      NOT NULL,
		category   TEXT,
		supplier   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_material_entries_material_date ON material_entries (material, date, id)`,
	`CREATE INDEX IF NOT EXISTS idx_material_entries_category ON material_entries (category)`,
	`CREATE TABLE IF NOT EXISTS material_exits (
		id        BIGSERIAL PRIMARY KEY,
		entry_id  BIGINT NOT NULL REFERENCES material_entries (id),
		material  TEXT   NOT NULL,
		quantity  BIGINT NOT NULL CHECK (quantity > 0),
		personnel TEXT   NOT NULL,
		date      DATE   NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_material_exits_date ON material_exits (date)`,
	`CREATE TABLE IF NOT EXISTS stock_levels (
		material TEXT   PRIMARY KEY,
		total    BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		name TEXT PRIMARY KEY
	)`,
}

// EnsureSchema crea las tablas si no existen. Con reset las elimina antes (datos incluidos).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, reset bool) error {
	if reset {
		const drop = `DROP TABLE IF EXISTS material_exits, material_entries, stock_levels, categories`
		if _, err := pool.Exec(ctx, drop); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
