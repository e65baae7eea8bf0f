package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCSV_UTF8(t *testing.T) {
	in := "\xef\xbb\xbfmaterial;unit_price;quantity;tax_rate;date;category;supplier\n" +
		"Bolt;2,50;100;20;01.01.2024;Hırdavat;ACME\n" +
		";;;;;;\n" +
		"Kablo;5;4;;02.01.2024\n"
	rows, err := ReadCSV(bytes.NewBufferString(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, dto.RecordEntryRequest{
		Material: "Bolt", UnitPrice: "2,50", Quantity: "100", TaxRate: "20",
		Date: "01.01.2024", Category: "Hırdavat", Supplier: "ACME",
	}, rows[0].Request)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "Kablo", rows[1].Request.Material)
	assert.Empty(t, rows[1].Request.Supplier)
}

func TestReadCSV_LineNumbersSurviveEmptyLines(t *testing.T) {
	in := "material;unit_price;quantity;date\n" +
		"\n" +
		"Bolt;2;10;01.01.2024\n" +
		"\n\n" +
		"Kablo;5;4;02.01.2024\n"
	rows, err := ReadCSV(bytes.NewBufferString(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Line)
	assert.Equal(t, 6, rows[1].Line)
}

func TestReadCSV_Windows1254(t *testing.T) {
	utf := "malzeme;birim fiyat;miktar;tarih;tedarikçi\nBoya_Kırmızı;10;3;20.03.2024;Şahin\n"
	encoded, err := charmap.Windows1254.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, err := ReadCSV(bytes.NewBufferString(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Boya_Kırmızı", rows[0].Request.Material)
	assert.Equal(t, "Şahin", rows[0].Request.Supplier)
	assert.Equal(t, "10", rows[0].Request.UnitPrice)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(bytes.NewBufferString("material;quantity\nBolt;1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ReadCSV(bytes.NewBufferString(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]string{"Material", "Unit Price", "Quantity", "Date"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]string{"Bolt", "2", "100", "01.01.2024"})
	path := filepath.Join(t.TempDir(), "entries.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Request.UnitPrice)
}

func TestReadFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err := ReadFile(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type recorderFunc func(dto.RecordEntryRequest) error

func (f recorderFunc) RecordEntry(_ context.Context, in dto.RecordEntryRequest) (*dto.RecordEntryResponse, error) {
	if err := f(in); err != nil {
		return nil, err
	}
	return &dto.RecordEntryResponse{ID: 1}, nil
}

func TestImport_CountsFailures(t *testing.T) {
	rows := []Row{
		{Line: 2, Request: dto.RecordEntryRequest{Material: "Bolt"}},
		{Line: 3, Request: dto.RecordEntryRequest{Material: ""}},
		{Line: 4, Request: dto.RecordEntryRequest{Material: "Kablo"}},
	}
	rec := recorderFunc(func(in dto.RecordEntryRequest) error {
		if in.Material == "" {
			return domain.InvalidField("material")
		}
		return nil
	})

	s, err := Import(context.Background(), rec, rows, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Imported)
	require.Len(t, s.Failed, 1)
	assert.Equal(t, 3, s.Failed[0].Line)
	assert.ErrorIs(t, s.Failed[0].Err, domain.ErrInvalidInput)
}

func TestImport_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := Import(ctx, recorderFunc(func(dto.RecordEntryRequest) error { return errors.New("no debería llamarse") }),
		[]Row{{Line: 2}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Imported)
}
