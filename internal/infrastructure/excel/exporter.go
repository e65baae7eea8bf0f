// Package excel lee y escribe libros XLSX con excelize.
package excel

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stok-takip/internal/application/analytics"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Rapor"
	minColWidth = 10
	maxColWidth = 60
)

// Exporter implementa analytics.TableExporter generando un .xlsx de una hoja.
type Exporter struct{}

var _ analytics.TableExporter = (*Exporter)(nil)

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Format extensión de los archivos generados.
func (e *Exporter) Format() string { return "xlsx" }

// ContentType tipo MIME de un libro XLSX.
func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export escribe título, fecha de generación, encabezados en negrita y filas.
// El ancho de cada columna se ajusta al texto más largo.
func (e *Exporter) Export(t *analytics.Table, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	_ = f.SetCellValue(sheetName, "A1", t.Title)
	_ = f.SetCellStyle(sheetName, "A1", "A1", bold)
	_ = f.SetCellValue(sheetName, "A2", "Generado: "+generatedAt.Format("02.01.2006 15:04"))

	const headerRow = 4
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, h)
		widths[i] = utf8.RuneCountInString(h)
	}
	if len(t.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), headerRow)
		if err := f.SetCellStyle(sheetName, first, last, header); err != nil {
			return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
		}
	}

	for r, cells := range t.Rows {
		for c, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: celda %s: %w", cell, err)
			}
			if c < len(widths) && utf8.RuneCountInString(v) > widths[c] {
				widths[c] = utf8.RuneCountInString(v)
			}
		}
	}

	for i, w := range widths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, colName, colName, float64(clamp(w+2, minColWidth, maxColWidth)))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
