// Package pdf exporta las tablas de reportes a PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────┐
//	│  TÍTULO DEL REPORTE              Generado: fecha/hora │
//	│  ──────────────────────────────────────────────────  │
//	│  CABECERA: una columna por encabezado de la tabla     │
//	│  FILAS: datos en texto, la última con los totales     │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stok-takip/internal/application/analytics"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Exporter ──────────────────────────────────────────────────────────────────

// MarotoTableExporter implementa analytics.TableExporter usando Maroto v2.
type MarotoTableExporter struct{}

var _ analytics.TableExporter = (*MarotoTableExporter)(nil)

// NewMarotoTableExporter construye el exportador.
func NewMarotoTableExporter() *MarotoTableExporter { return &MarotoTableExporter{} }

// Format extensión de los archivos generados.
func (e *MarotoTableExporter) Format() string { return "pdf" }

// ContentType tipo MIME del documento.
func (e *MarotoTableExporter) ContentType() string { return "application/pdf" }

// Export genera el PDF de la tabla y devuelve sus bytes.
// La grilla tiene una columna por encabezado.
func (e *MarotoTableExporter) Export(t *analytics.Table, generatedAt time.Time) ([]byte, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("pdf: tabla sin encabezados")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(len(t.Headers)).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(safe(t.Title), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(t.Title, generatedAt, len(t.Headers)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(t.Headers))
	m.AddRows(bodyRows(t.Rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título (izq) y fecha de generación (der).
func titleRow(title string, at time.Time, grid int) core.Row {
	right := grid / 3
	if right == 0 {
		right = 1
	}
	left := grid - right
	if left == 0 {
		return row.New(12).Add(col.New(grid).Add(
			text.New(safe(title), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		))
	}
	return row.New(12).Add(
		col.New(left).Add(
			text.New(safe(title), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(right).Add(
			text.New("Generado: "+at.Format("02.01.2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 3,
			}),
		),
	)
}

func headerRow(headers []string) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(1).Add(text.New(safe(h), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// bodyRows: una fila por fila de la tabla; filas alternas con fondo.
func bodyRows(rows [][]string) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for i, cells := range rows {
		cols := make([]core.Col, 0, len(cells))
		for _, c := range cells {
			cols = append(cols, col.New(1).Add(text.New(safe(c), props.Text{
				Size: 7.5, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Las fuentes estándar del PDF usan cp1252, que no tiene ı, ş ni ğ.
var cp1252Safe = strings.NewReplacer(
	"ı", "i", "İ", "I",
	"ş", "s", "Ş", "S",
	"ğ", "g", "Ğ", "G",
)

func safe(s string) string { return cp1252Safe.Replace(s) }
