package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalQuantity   int64           `json:"total_quantity"`    // Σ cantidades compradas
	LowStockEntries int64           `json:"low_stock_entries"` // entradas con cantidad < umbral
	TotalCost       decimal.Decimal `json:"total_cost"`        // Σ totales de entradas
	CategoryCount   int64           `json:"category_count"`
	Threshold       int64           `json:"threshold"`
}
