package inventory

import "github.com/shopspring/decimal"

// DefaultLowStockThreshold por debajo de esta cantidad un material se considera con stock bajo.
const DefaultLowStockThreshold int64 = 10

var hundred = decimal.NewFromInt(100)

// TaxFraction convierte un porcentaje (20) en fracción (0.20).
func TaxFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// EntryTotal costo total de una entrada (servicio de dominio).
// Total = PrecioUnitario * Cantidad * (1 + Impuesto), sin redondear; el redondeo es solo de presentación.
func EntryTotal(unitPrice decimal.Decimal, quantity int64, taxFraction decimal.Decimal) decimal.Decimal {
	return unitPrice.
		Mul(decimal.NewFromInt(quantity)).
		Mul(decimal.NewFromInt(1).Add(taxFraction))
}

// ExitCost costo de una salida valorizada al precio unitario de su entrada de origen.
func ExitCost(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// IsLowStock indica si total está por debajo del umbral.
func IsLowStock(total, threshold int64) bool {
	return total < threshold
}
