package dto

// CategoryRequest body para POST /api/categories.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListResponse lista de nombres (categorías, materiales, proveedores).
type ListResponse struct {
	Items []string `json:"items"`
}
