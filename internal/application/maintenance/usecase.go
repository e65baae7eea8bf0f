package maintenance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/pkg/logger"
)

// BackupFileName nombre de la copia: stok_takip_backup_AAAAMMDD_HHMMSS.db.
func BackupFileName(at time.Time) string {
	return fmt.Sprintf("stok_takip_backup_%s.db", at.Format("20060102_150405"))
}

// UseCase copia de seguridad, restauración y borrado total de datos.
type UseCase struct {
	store     Store
	backupDir string
	now       func() time.Time
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(store Store, backupDir string, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{store: store, backupDir: backupDir, now: time.Now, log: log.Component("maintenance")}
}

// Backup escribe una copia con marca de tiempo en el directorio de copias.
func (uc *UseCase) Backup(ctx context.Context) (*dto.BackupResponse, error) {
	if err := os.MkdirAll(uc.backupDir, 0o755); err != nil {
		return nil, domain.Storage("crear directorio de copias", err)
	}
	dst := filepath.Join(uc.backupDir, BackupFileName(uc.now()))
	if err := uc.store.Backup(ctx, dst); err != nil {
		uc.log.Error().Err(err).Str("path", dst).Msg("copia de seguridad fallida")
		return nil, fmt.Errorf("copia de seguridad: %w", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		return nil, domain.Storage("copia de seguridad", err)
	}
	uc.log.Info().Str("path", dst).Int64("size", info.Size()).Msg("copia de seguridad creada")
	return &dto.BackupResponse{Path: dst, Size: info.Size()}, nil
}

// Restore reemplaza la base de datos con el archivo src.
func (uc *UseCase) Restore(ctx context.Context, src string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: archivo de respaldo %q", domain.ErrNotFound, src)
	}
	if err := uc.store.Restore(ctx, src); err != nil {
		uc.log.Error().Err(err).Str("src", src).Msg("restauración fallida")
		return fmt.Errorf("restaurar: %w", err)
	}
	uc.log.Warn().Str("src", src).Msg("base de datos restaurada")
	return nil
}

// RestoreFrom guarda r en un archivo temporal del directorio de copias y restaura desde él.
func (uc *UseCase) RestoreFrom(ctx context.Context, r io.Reader) error {
	if err := os.MkdirAll(uc.backupDir, 0o755); err != nil {
		return domain.Storage("crear directorio de copias", err)
	}
	tmp, err := os.CreateTemp(uc.backupDir, "restore-*.db")
	if err != nil {
		return domain.Storage("archivo temporal", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return domain.Storage("recibir respaldo", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.Storage("recibir respaldo", err)
	}
	return uc.Restore(ctx, tmp.Name())
}

// Wipe borra todos los movimientos, niveles de stock y categorías.
func (uc *UseCase) Wipe(ctx context.Context) error {
	if err := uc.store.Wipe(ctx); err != nil {
		return fmt.Errorf("borrar datos: %w", err)
	}
	uc.log.Warn().Msg("todos los datos fueron borrados")
	return nil
}
