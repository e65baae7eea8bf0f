package dto

import "github.com/shopspring/decimal"

// Direcciones de movimiento.
const (
	DirectionAll = "all"
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Estados de la vista de stock.
const (
	StockStatusAll    = "all"
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
)

// MovementQuery filtros de GET /api/reports/movements.
type MovementQuery struct {
	From      string `query:"from"` // dd.mm.aaaa; vacío = primer día del mes actual
	To        string `query:"to"`   // dd.mm.aaaa; vacío = hoy
	Category  string `query:"category"`
	Material  string `query:"material"`
	Direction string `query:"direction" validate:"omitempty,oneof=all in out"`
}

// MovementDTO fila del historial de movimientos.
type MovementDTO struct {
	ID        int64           `json:"id"`
	Date      string          `json:"date"`
	Direction string          `json:"direction"` // in | out
	Material  string          `json:"material"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`               // total de la entrada o cantidad * precio de origen
	Supplier  string          `json:"supplier,omitempty"`  // solo entradas
	Personnel string          `json:"personnel,omitempty"` // solo salidas
	EntryID   int64           `json:"entry_id,omitempty"`  // solo salidas
	Category  string          `json:"category"`
}

// MovementReportDTO respuesta del historial con sus totales.
type MovementReportDTO struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Rows        []MovementDTO   `json:"rows"`
	TotalIn     int64           `json:"total_in"`
	TotalOut    int64           `json:"total_out"`
	TotalInCost decimal.Decimal `json:"total_in_cost"`
}

// StockQuery filtros de GET /api/reports/stock.
type StockQuery struct {
	Category string `query:"category"`
	Material string `query:"material"`
	Status   string `query:"status" validate:"omitempty,oneof=all low normal"`
}

// StockRowDTO fila de la vista de stock actual.
type StockRowDTO struct {
	Material  string          `json:"material"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // precio de la última entrada
	Value     decimal.Decimal `json:"value"`      // cantidad * precio
	Supplier  string          `json:"supplier,omitempty"`
	Category  string          `json:"category"`
	LastEntry string          `json:"last_entry"`
	Low       bool            `json:"low"`
}

// StockReportDTO respuesta de la vista de stock con totales.
type StockReportDTO struct {
	Rows          []StockRowDTO   `json:"rows"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowCount      int             `json:"low_count"`
	Threshold     int64           `json:"threshold"`
}

// MonthlyQuery filtros de GET /api/reports/monthly.
type MonthlyQuery struct {
	Year     int    `query:"year" validate:"omitempty,min=1900,max=9999"` // 0 = año actual
	Category string `query:"category"`
	Material string `query:"material"`
}

// MonthlyRowDTO agregados de un mes.
type MonthlyRowDTO struct {
	Month  int             `json:"month"` // 1..12
	Label  string          `json:"label"`
	In     int64           `json:"in"`
	Out    int64           `json:"out"`
	Net    int64           `json:"net"`
	InCost decimal.Decimal `json:"in_cost"`
}

// MonthlyReportDTO doce meses y totales del año.
type MonthlyReportDTO struct {
	Year   int             `json:"year"`
	Months []MonthlyRowDTO `json:"months"`
	Total  MonthlyRowDTO   `json:"total"`
}
