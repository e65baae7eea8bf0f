// Package sqlite implementa el almacenamiento del libro de stock sobre un archivo SQLite (gorm).
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/pkg/config"
	"github.com/jhoicas/stok-takip/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Conn da acceso a un *gorm.DB: el handle del Store o una transacción en curso.
type Conn interface {
	Do(ctx context.Context, fn func(db *gorm.DB) error) error
}

// Store mantiene el único handle de la base de datos.
// Las operaciones normales toman el lock compartido; Restore toma el exclusivo mientras cambia el archivo.
type Store struct {
	mu   sync.RWMutex
	path string
	db   *gorm.DB
	log  *logger.Logger
}

var _ Conn = (*Store)(nil)

// Open abre (o crea) el archivo configurado y migra el esquema.
// Con ResetOnStart las tablas se eliminan y se recrean vacías.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{path: cfg.Path, log: log.Component("sqlite")}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := openDB(cfg.Path)
	if err != nil {
		return nil, err
	}
	s.db = db

	if cfg.ResetOnStart {
		if err := db.WithContext(ctx).Migrator().DropTable(reversed(allModels)...); err != nil {
			_ = s.Close()
			return nil, domain.Storage("drop tables", err)
		}
		s.log.Warn().Str("path", cfg.Path).Msg("tablas recreadas (STORE_RESET_ON_START)")
	}
	if err := migrate(db.WithContext(ctx)); err != nil {
		_ = s.Close()
		return nil, err
	}
	s.log.Info().Str("path", cfg.Path).Msg("base de datos abierta")
	return s, nil
}

func openDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, domain.Storage("open database", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, domain.Storage("get sql db", err)
	}

	// Una sola conexión: todas las operaciones quedan serializadas.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			_ = sqlDB.Close()
			return nil, domain.Storage("pragma", err)
		}
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels...); err != nil {
		return domain.Storage("auto migrate", err)
	}
	return nil
}

func reversed(models []any) []any {
	out := make([]any, len(models))
	for i, m := range models {
		out[len(models)-1-i] = m
	}
	return out
}

// Path ruta del archivo de base de datos.
func (s *Store) Path() string { return s.path }

// Do ejecuta fn con el handle actual bajo el lock compartido.
func (s *Store) Do(ctx context.Context, fn func(db *gorm.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return domain.Storage("store", fmt.Errorf("base de datos cerrada"))
	}
	return fn(s.db.WithContext(ctx))
}

// Ping verifica que la base responde.
func (s *Store) Ping(ctx context.Context) error {
	return s.Do(ctx, func(db *gorm.DB) error {
		sqlDB, err := db.DB()
		if err != nil {
			return domain.Storage("ping", err)
		}
		return domain.Storage("ping", sqlDB.PingContext(ctx))
	})
}

// Close cierra el handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return domain.Storage("close", err)
	}
	return domain.Storage("close", sqlDB.Close())
}

// txConn Conn atado a una transacción abierta.
type txConn struct{ tx *gorm.DB }

func (c txConn) Do(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(c.tx.WithContext(ctx))
}
