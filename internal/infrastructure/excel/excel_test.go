package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporter_Export(t *testing.T) {
	e := NewExporter()
	assert.Equal(t, "xlsx", e.Format())

	table := &analytics.Table{
		Title:   "Movimientos 01.01.2024 - 31.01.2024",
		Headers: []string{"Fecha", "Tipo", "Material"},
		Rows: [][]string{
			{"02.01.2024", "Salida", "Bolt"},
			{"01.01.2024", "Entrada", "Boya_Kırmızı"},
		},
	}
	data, err := e.Export(table, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, table.Title, title)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Fecha", "Tipo", "Material"}, rows[3])
	assert.Equal(t, []string{"01.01.2024", "Entrada", "Boya_Kırmızı"}, rows[5])

	width, err := f.GetColWidth(sheetName, "C")
	require.NoError(t, err)
	assert.InDelta(t, 14, width, 0.01)
}

func TestReadRows(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]string{"material", "unit_price", "quantity"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]string{"Bolt", "2", "100"})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"material", "unit_price", "quantity"}, {"Bolt", "2", "100"}}, rows)
}

func TestReadRows_NotXLSX(t *testing.T) {
	_, err := ReadRows(bytes.NewReader([]byte("material;quantity")))
	assert.Error(t, err)
}
