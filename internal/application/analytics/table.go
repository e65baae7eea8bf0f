package analytics

import (
	"strconv"

	"github.com/jhoicas/stok-takip/internal/application/dto"
)

// Table resultado tabular de un reporte listo para exportar (encabezados + filas en texto).
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Empty indica si la tabla no tiene filas de datos.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

func directionLabel(d string) string {
	if d == dto.DirectionIn {
		return "Entrada"
	}
	return "Salida"
}

// MovementTable convierte el historial en tabla. Agrega una fila final de totales.
func MovementTable(r *dto.MovementReportDTO) *Table {
	t := &Table{
		Title:   "Movimientos " + r.From + " - " + r.To,
		Headers: []string{"Fecha", "Tipo", "Material", "Cantidad", "Precio unitario", "Total", "Proveedor / Personal", "Categoría"},
	}
	for _, m := range r.Rows {
		who := m.Supplier
		if m.Direction == dto.DirectionOut {
			who = m.Personnel
		}
		t.Rows = append(t.Rows, []string{
			m.Date,
			directionLabel(m.Direction),
			m.Material,
			strconv.FormatInt(m.Quantity, 10),
			m.UnitPrice.StringFixed(2),
			m.Total.StringFixed(2),
			who,
			m.Category,
		})
	}
	if len(t.Rows) > 0 {
		t.Rows = append(t.Rows, []string{
			"", "Total", "",
			"+" + strconv.FormatInt(r.TotalIn, 10) + " / -" + strconv.FormatInt(r.TotalOut, 10),
			"", r.TotalInCost.StringFixed(2), "", "",
		})
	}
	return t
}

// StockTable convierte la vista de stock en tabla.
func StockTable(r *dto.StockReportDTO) *Table {
	t := &Table{
		Title:   "Stock actual",
		Headers: []string{"Material", "Cantidad", "Precio unitario", "Valor", "Proveedor", "Categoría", "Última entrada", "Estado"},
	}
	for _, s := range r.Rows {
		status := "Normal"
		if s.Low {
			status = "Stock bajo"
		}
		t.Rows = append(t.Rows, []string{
			s.Material,
			strconv.FormatInt(s.Quantity, 10),
			s.UnitPrice.StringFixed(2),
			s.Value.StringFixed(2),
			s.Supplier,
			s.Category,
			s.LastEntry,
			status,
		})
	}
	if len(t.Rows) > 0 {
		t.Rows = append(t.Rows, []string{
			"Total", strconv.FormatInt(r.TotalQuantity, 10), "", r.TotalValue.StringFixed(2),
			"", "", "", strconv.Itoa(r.LowCount) + " bajo",
		})
	}
	return t
}

// MonthlyTable convierte el reporte mensual en tabla (12 meses + total anual).
// Un año sin movimientos produce una tabla vacía.
func MonthlyTable(r *dto.MonthlyReportDTO) *Table {
	t := &Table{
		Title:   "Reporte mensual " + strconv.Itoa(r.Year),
		Headers: []string{"Mes", "Entradas", "Salidas", "Neto", "Costo de compras"},
	}
	if r.Total.In == 0 && r.Total.Out == 0 && r.Total.InCost.IsZero() {
		return t
	}
	for _, m := range append(append([]dto.MonthlyRowDTO{}, r.Months...), r.Total) {
		t.Rows = append(t.Rows, []string{
			m.Label,
			strconv.FormatInt(m.In, 10),
			strconv.FormatInt(m.Out, 10),
			strconv.FormatInt(m.Net, 10),
			m.InCost.StringFixed(2),
		})
	}
	return t
}
