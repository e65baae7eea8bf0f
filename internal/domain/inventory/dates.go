package inventory

import (
	"strings"
	"time"
)

// DateLayout formato día.mes.año con el que se intercambian las fechas del libro.
const DateLayout = "02.01.2006"

// ParseDate interpreta s (dd.mm.aaaa) y devuelve la medianoche UTC de ese día.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDate formatea t como dd.mm.aaaa.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day normaliza t a la medianoche UTC de su fecha de calendario.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthRange devuelve el primer y último día (inclusive) del mes indicado.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// YearRange devuelve el 1 de enero y el 31 de diciembre del año.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
