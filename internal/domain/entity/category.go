package entity

// Category categoría de materiales. Puede existir sin entradas asociadas.
type Category struct {
	Name string
}
