package entity

// StockLevel total corriente en existencia de un material (tabla desnormalizada).
// Total = Σ cantidades de entradas - Σ cantidades de salidas del material.
type StockLevel struct {
	Material string
	Total    int64
}
