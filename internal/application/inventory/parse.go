package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stok-takip/internal/domain"
	ledger "github.com/jhoicas/stok-takip/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// parseAmount acepta "2.50" y también la coma decimal del formulario ("2,50").
func parseAmount(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NumericField(field, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, domain.InvalidField(field)
	}
	return d, nil
}

// parseQuantity entero no negativo; con positive=true también rechaza cero.
func parseQuantity(field, raw string, positive bool) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, domain.NumericField(field, raw)
	}
	if n < 0 || (positive && n == 0) {
		return 0, domain.InvalidField(field)
	}
	return n, nil
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := ledger.ParseDate(raw)
	if err != nil {
		return time.Time{}, domain.InvalidField(field)
	}
	return d, nil
}
