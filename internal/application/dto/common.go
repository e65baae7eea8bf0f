package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`     // campo inválido (VALIDATION / NUMERIC)
	Available *int64 `json:"available,omitempty"` // stock disponible (INSUFFICIENT_STOCK)
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
