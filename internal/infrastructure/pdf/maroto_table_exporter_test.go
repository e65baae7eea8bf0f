package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarotoTableExporter_Export(t *testing.T) {
	e := NewMarotoTableExporter()
	assert.Equal(t, "pdf", e.Format())
	assert.Equal(t, "application/pdf", e.ContentType())

	table := &analytics.Table{
		Title:   "Stock actual",
		Headers: []string{"Material", "Cantidad", "Estado"},
		Rows: [][]string{
			{"Bolt", "80", "Normal"},
			{"Boya_Kırmızı", "3", "Stock bajo"},
			{"Total", "83", "1 bajo"},
		},
	}
	data, err := e.Export(table, time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestMarotoTableExporter_RequiresHeaders(t *testing.T) {
	_, err := NewMarotoTableExporter().Export(&analytics.Table{Title: "x"}, time.Now())
	assert.Error(t, err)
}

func TestSafe(t *testing.T) {
	assert.Equal(t, "Ayse Isik Dogan", safe("Ayşe Işık Doğan"))
	assert.Equal(t, "Çöp Ürün", safe("Çöp Ürün"))
}
