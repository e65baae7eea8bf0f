package maintenance

import "context"

// Store operaciones de mantenimiento sobre el almacenamiento del libro.
// Las implementaciones sin archivo local (PostgreSQL) devuelven domain.ErrUnsupported en Backup/Restore.
type Store interface {
	// Backup copia la base de datos completa a dst.
	Backup(ctx context.Context, dst string) error
	// Restore libera el handle, reemplaza la base por src y la vuelve a abrir.
	Restore(ctx context.Context, src string) error
	// Wipe borra todas las filas de todas las tablas en una transacción.
	Wipe(ctx context.Context) error
}
