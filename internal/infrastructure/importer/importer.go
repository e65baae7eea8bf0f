// Package importer carga entradas de material desde archivos CSV o XLSX.
//
// Columnas reconocidas (encabezado obligatorio, en cualquier orden):
// material;unit_price;quantity;tax_rate;date;category;supplier.
// También se aceptan los nombres en turco (malzeme, birim_fiyat, miktar, kdv, tarih, kategori, tedarikci).
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/infrastructure/excel"
	"github.com/jhoicas/stok-takip/pkg/logger"
)

// Row entrada leída del archivo con su número de línea (1 = encabezado).
type Row struct {
	Line    int
	Request dto.RecordEntryRequest
}

var columnAliases = map[string]string{
	"material": "material", "malzeme": "material",
	"unit_price": "unit_price", "birim_fiyat": "unit_price", "fiyat": "unit_price",
	"quantity": "quantity", "miktar": "quantity",
	"tax_rate": "tax_rate", "kdv": "tax_rate",
	"date": "date", "tarih": "date",
	"category": "category", "kategori": "category",
	"supplier": "supplier", "tedarikci": "supplier", "tedarikçi": "supplier",
}

var requiredColumns = []string{"material", "unit_price", "quantity", "date"}

// ReadFile elige el lector por extensión (.csv o .xlsx).
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return nil, domain.InvalidField("file")
	}
}

// ReadCSV lee un CSV separado por ';'. Si el contenido no es UTF-8 válido se decodifica como Windows-1254.
func ReadCSV(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1254.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	// encoding/csv salta las líneas vacías; el número de línea se toma del lector
	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", domain.ErrInvalidInput, err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return fromRecords(records, lines)
}

// ReadXLSX lee la primera hoja de un libro XLSX.
func ReadXLSX(r io.Reader) ([]Row, error) {
	records, err := excel.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return fromRecords(records, nil)
}

// fromRecords lines[i] es la línea de records[i] en el archivo; nil significa fila i+1 (XLSX).
func fromRecords(records [][]string, lines []int) ([]Row, error) {
	if len(records) == 0 {
		return nil, domain.InvalidField("header")
	}
	index := make(map[string]int)
	for i, h := range records[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if name, ok := columnAliases[key]; ok {
			index[name] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, c)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []Row
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if blank(rec) {
			continue
		}
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		out = append(out, Row{
			Line: line,
			Request: dto.RecordEntryRequest{
				Material:  get(rec, "material"),
				UnitPrice: get(rec, "unit_price"),
				Quantity:  get(rec, "quantity"),
				TaxRate:   get(rec, "tax_rate"),
				Date:      get(rec, "date"),
				Category:  get(rec, "category"),
				Supplier:  get(rec, "supplier"),
			},
		})
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// EntryRecorder registra una entrada; lo implementa inventory.LedgerUseCase.
type EntryRecorder interface {
	RecordEntry(ctx context.Context, in dto.RecordEntryRequest) (*dto.RecordEntryResponse, error)
}

// RowError fallo de una fila concreta.
type RowError struct {
	Line int
	Err  error
}

// Summary resultado de una importación.
type Summary struct {
	Imported int
	Failed   []RowError
}

// Import registra cada fila con rec. Un fallo no detiene el resto; se registra y se cuenta.
// Solo se interrumpe si el contexto se cancela.
func Import(ctx context.Context, rec EntryRecorder, rows []Row, log *logger.Logger) (*Summary, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Summary{}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		res, err := rec.RecordEntry(ctx, row.Request)
		if err != nil {
			s.Failed = append(s.Failed, RowError{Line: row.Line, Err: err})
			log.Warn().Int("line", row.Line).Str("material", row.Request.Material).Err(err).Msg("fila rechazada")
			continue
		}
		s.Imported++
		log.Debug().Int("line", row.Line).Int64("entry_id", res.ID).Msg("fila importada")
	}
	return s, nil
}
