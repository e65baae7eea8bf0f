package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry representa una compra de material (entrada al libro de stock).
// Total se calcula al crear la entrada con la cantidad comprada y no se recalcula.
type Entry struct {
	ID        int64
	Material  string
	UnitPrice decimal.Decimal
	Quantity  int64
	TaxRate   decimal.Decimal // fracción, ej. 0.20
	Total     decimal.Decimal
	Date      time.Time
	Category  string // vacío si no tiene
	Supplier  string // vacío si no tiene
}
