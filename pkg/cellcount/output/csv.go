package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the record as a header line and a single data row.
func WriteCSV(w io.Writer, rec *models.ExportRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cols := columns(rec)
	header := make([]string, len(cols))
	row := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
		row[i] = c.Text()
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
