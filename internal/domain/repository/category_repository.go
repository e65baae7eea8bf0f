package repository

import "context"

// CatalogRepository define el puerto para categorías y búsquedas de valores distintos.
type CatalogRepository interface {
	// AddCategory es idempotente.
	AddCategory(ctx context.Context, name string) error
	// RemoveCategory deja sin categoría las entradas que la usan y borra la categoría, en una transacción.
	// ErrNotFound si no existe ni como categoría ni en ninguna entrada.
	RemoveCategory(ctx context.Context, name string) error
	// ListCategories unión ordenada de la tabla de categorías y las categorías usadas en entradas.
	ListCategories(ctx context.Context) ([]string, error)
	// DistinctMaterials / DistinctSuppliers devuelven valores que contienen q (vacío = todos), ordenados.
	DistinctMaterials(ctx context.Context, q string, limit int) ([]string, error)
	DistinctSuppliers(ctx context.Context, q string, limit int) ([]string, error)
}
