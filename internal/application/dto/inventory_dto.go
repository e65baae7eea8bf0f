package dto

import "github.com/shopspring/decimal"

// RecordEntryRequest body para POST /api/entries.
// Los valores llegan como texto del formulario y los valida/parsea el caso de uso.
type RecordEntryRequest struct {
	Material  string `json:"material" validate:"required"`
	UnitPrice string `json:"unit_price" validate:"required"`
	Quantity  string `json:"quantity" validate:"required"`
	TaxRate   string `json:"tax_rate"`                 // porcentaje; vacío = tasa por defecto
	Date      string `json:"date" validate:"required"` // dd.mm.aaaa
	Category  string `json:"category,omitempty"`
	Supplier  string `json:"supplier,omitempty"`
}

// RecordEntryResponse resultado de registrar una entrada.
type RecordEntryResponse struct {
	ID    int64           `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// RecordExitRequest body para POST /api/exits.
type RecordExitRequest struct {
	Material  string `json:"material" validate:"required"`
	Personnel string `json:"personnel" validate:"required"`
	Quantity  string `json:"quantity" validate:"required"`
	Date      string `json:"date" validate:"required"` // dd.mm.aaaa
}

// RecordExitResponse resultado de registrar una salida.
type RecordExitResponse struct {
	ID        int64  `json:"id"`
	EntryID   int64  `json:"entry_id"` // entrada de origen (FIFO)
	Material  string `json:"material"`
	Quantity  int64  `json:"quantity"`
	Remaining int64  `json:"remaining"` // stock del material después de la salida
}

// StockLevelDTO total corriente de un material.
type StockLevelDTO struct {
	Material string `json:"material"`
	Total    int64  `json:"total"`
}
