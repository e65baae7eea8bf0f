package analytics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
)

// Reportes exportables.
const (
	ReportMovements = "movements"
	ReportStock     = "stock"
	ReportMonthly   = "monthly"
)

// TableExporter serializa una Table a un formato de archivo (xlsx, pdf).
type TableExporter interface {
	Format() string // extensión sin punto
	ContentType() string
	Export(t *Table, generatedAt time.Time) ([]byte, error)
}

// ExportRequest reporte a exportar con sus filtros.
type ExportRequest struct {
	Kind      string
	Format    string
	Movements dto.MovementQuery
	Stock     dto.StockQuery
	Monthly   dto.MonthlyQuery
}

// ExportedFile archivo generado en memoria.
type ExportedFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// ExportUseCase genera el reporte pedido y lo serializa con el exportador del formato.
type ExportUseCase struct {
	reports   *ReportUseCase
	exporters map[string]TableExporter
	dir       string
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso. dir es el directorio donde SaveToDir escribe los archivos.
func NewExportUseCase(reports *ReportUseCase, dir string, exporters ...TableExporter) *ExportUseCase {
	m := make(map[string]TableExporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &ExportUseCase{reports: reports, exporters: m, dir: dir, now: time.Now}
}

// FileName nombre del archivo exportado: stok_rapor_AAAAMMDD_HHMMSS.<ext>.
func FileName(at time.Time, ext string) string {
	return fmt.Sprintf("stok_rapor_%s.%s", at.Format("20060102_150405"), ext)
}

// BuildTable ejecuta el reporte indicado y lo convierte en tabla.
func (uc *ExportUseCase) BuildTable(ctx context.Context, req ExportRequest) (*Table, error) {
	switch req.Kind {
	case ReportMovements:
		r, err := uc.reports.QueryMovements(ctx, req.Movements)
		if err != nil {
			return nil, err
		}
		return MovementTable(r), nil
	case ReportStock:
		r, err := uc.reports.QueryStock(ctx, req.Stock)
		if err != nil {
			return nil, err
		}
		return StockTable(r), nil
	case ReportMonthly:
		r, err := uc.reports.QueryMonthly(ctx, req.Monthly)
		if err != nil {
			return nil, err
		}
		return MonthlyTable(r), nil
	}
	return nil, domain.InvalidField("kind")
}

// Export genera el archivo en memoria. Una tabla sin filas no se exporta.
func (uc *ExportUseCase) Export(ctx context.Context, req ExportRequest) (*ExportedFile, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "xlsx"
	}
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, domain.InvalidField("format")
	}

	table, err := uc.BuildTable(ctx, req)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, fmt.Errorf("%w: no hay datos para exportar", domain.ErrInvalidInput)
	}

	at := uc.now()
	data, err := exporter.Export(table, at)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", format, err)
	}
	return &ExportedFile{
		Name:        FileName(at, exporter.Format()),
		ContentType: exporter.ContentType(),
		Data:        data,
		Rows:        len(table.Rows),
	}, nil
}

// SaveToDir exporta y escribe el archivo en el directorio de exportación. Devuelve la ruta.
func (uc *ExportUseCase) SaveToDir(ctx context.Context, req ExportRequest) (string, *ExportedFile, error) {
	file, err := uc.Export(ctx, req)
	if err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return "", nil, domain.Storage("crear directorio de exportación", err)
	}
	path := filepath.Join(uc.dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", nil, domain.Storage("escribir exportación", err)
	}
	return path, file, nil
}
