package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
	"github.com/xuri/excelize/v2"
)

const (
	// CalculationSheet holds the header and the result row.
	CalculationSheet = "Calculation"
	// CountsSheet lists the per-square counts in the layout parser.ExtractCounts reads.
	CountsSheet = "Counts"
)

// Built-in and custom number formats for the result row.
var (
	sciStyle    = &excelize.Style{NumFmt: 11} // 0.00E+00
	fixed2Style = &excelize.Style{NumFmt: 2}  // 0.00
	fixed3      = "0.000"
	fixed3Style = &excelize.Style{CustomNumFmt: &fixed3}
	headerStyle = &excelize.Style{Font: &excelize.Font{Bold: true}}
)

// NewWorkbook builds an Excel workbook holding the record.
// The caller owns the returned file and must close it.
func NewWorkbook(rec *models.ExportRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), CalculationSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeCalculationSheet(f, rec); err != nil {
		f.Close()
		return nil, fmt.Errorf("calculation sheet: %w", err)
	}
	if err := writeCountsSheet(f, rec.Request.Counts); err != nil {
		f.Close()
		return nil, fmt.Errorf("counts sheet: %w", err)
	}
	return f, nil
}

// WriteXLSX writes the record as an xlsx workbook.
func WriteXLSX(w io.Writer, rec *models.ExportRecord) error {
	f, err := NewWorkbook(rec)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func writeCalculationSheet(f *excelize.File, rec *models.ExportRecord) error {
	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for i, c := range columns(rec) {
		header, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		value, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}

		if err := f.SetCellStr(CalculationSheet, header, c.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(CalculationSheet, header, header, styles[-1]); err != nil {
			return err
		}
		if err := f.SetCellValue(CalculationSheet, value, c.Value); err != nil {
			return err
		}
		if id, ok := styles[c.Format]; ok {
			if err := f.SetCellStyle(CalculationSheet, value, value, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// newStyles registers the styles used by the calculation sheet.
// Key -1 is the header style.
func newStyles(f *excelize.File) (map[numFmt]int, error) {
	defs := map[numFmt]*excelize.Style{
		-1:        headerStyle,
		fmtSci:    sciStyle,
		fmtFixed2: fixed2Style,
		fmtFixed3: fixed3Style,
	}

	styles := make(map[numFmt]int, len(defs))
	for k, s := range defs {
		id, err := f.NewStyle(s)
		if err != nil {
			return nil, err
		}
		styles[k] = id
	}
	return styles, nil
}

func writeCountsSheet(f *excelize.File, counts []models.CountInput) error {
	if _, err := f.NewSheet(CountsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(CountsSheet, "A1", &[]any{"Live", "Dead", "Square"}); err != nil {
		return err
	}
	for i, c := range counts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(CountsSheet, cell, &[]any{c.Live, c.Dead, i + 1}); err != nil {
			return err
		}
	}
	return nil
}
