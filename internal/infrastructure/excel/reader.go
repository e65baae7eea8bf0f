package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadRows devuelve las filas de la primera hoja del libro, encabezado incluido.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %q: %w", sheets[0], err)
	}
	return rows, nil
}
