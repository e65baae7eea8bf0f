package sqlite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/stok-takip/internal/application/maintenance"
	"github.com/jhoicas/stok-takip/internal/domain"
	"gorm.io/gorm"
)

var _ maintenance.Store = (*Store)(nil)

var sqliteHeader = []byte("SQLite format 3\x00")

// Backup escribe una copia consistente de la base en dst (VACUUM INTO). dst no debe existir.
func (s *Store) Backup(ctx context.Context, dst string) error {
	return s.Do(ctx, func(db *gorm.DB) error {
		return domain.Storage("backup", db.Exec("VACUUM INTO ?", dst).Error)
	})
}

// Restore reemplaza el archivo de la base por src.
// Cierra el handle, mueve el archivo actual a .bak, copia src y reabre. Si la reapertura falla
// se vuelve al archivo anterior y se devuelve un StorageError.
func (s *Store) Restore(ctx context.Context, src string) error {
	if err := checkHeader(src); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".restore"
	bak := s.path + ".bak"
	if err := copyFile(src, tmp); err != nil {
		return domain.Storage("restore: copy", err)
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := s.closeLocked(); err != nil {
		s.log.Warn().Err(err).Msg("restore: cierre con error")
	}
	if err := os.Rename(s.path, bak); err != nil {
		return s.reopenAfter(ctx, fmt.Errorf("restore: mover actual: %w", err))
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(s.path + suffix)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Rename(bak, s.path)
		return s.reopenAfter(ctx, fmt.Errorf("restore: reemplazar: %w", err))
	}

	db, err := openDB(s.path)
	if err == nil {
		err = migrate(db.WithContext(ctx))
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
	}
	if err != nil {
		_ = os.Remove(s.path)
		_ = os.Rename(bak, s.path)
		return s.reopenAfter(ctx, fmt.Errorf("restore: abrir respaldo: %w", err))
	}

	s.db = db
	_ = os.Remove(bak)
	s.log.Info().Str("src", src).Msg("base de datos restaurada")
	return nil
}

// reopenAfter reabre el archivo actual tras un fallo de restore; el store queda utilizable si es posible.
func (s *Store) reopenAfter(ctx context.Context, cause error) error {
	db, err := openDB(s.path)
	if err == nil {
		err = migrate(db.WithContext(ctx))
	}
	if err != nil {
		s.log.Error().Err(err).Msg("restore: no se pudo reabrir la base anterior")
		return domain.Storage("restore", fmt.Errorf("%v; reabrir: %w", cause, err))
	}
	s.db = db
	s.log.Warn().Err(cause).Msg("restore fallido; se reabrió la base anterior")
	return domain.Storage("restore", cause)
}

// Wipe borra todas las filas en una transacción.
func (s *Store) Wipe(ctx context.Context) error {
	return s.Do(ctx, func(db *gorm.DB) error {
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, table := range []string{"material_exits", "material_entries", "stock_levels", "categories"} {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return err
				}
			}
			return nil
		})
		return domain.Storage("wipe", err)
	})
}

func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	defer f.Close()

	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, sqliteHeader) {
		return domain.InvalidField("file")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
