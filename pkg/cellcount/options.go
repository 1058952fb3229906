// Package cellcount computes cell culture dilution and dispensing parameters
// from manual hemocytometer counts.
package cellcount

import "fmt"

// Format represents an output format for a calculation.
type Format string

const (
	// FormatText renders a human-readable report.
	FormatText Format = "text"
	// FormatJSON serializes the export record as JSON.
	FormatJSON Format = "json"
	// FormatCSV writes a one-row CSV table.
	FormatCSV Format = "csv"
	// FormatXLSX writes an Excel workbook.
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be text, json, csv, or xlsx)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Defaults holds the input values used when a field is not supplied.
type Defaults struct {
	SquareCount        int
	Live               int
	Dead               int
	DilutionFactor     float64
	StockVolumeMl      float64
	TargetCellsPerDish float64
	DispenseVolumeMl   float64
}

// DefaultInputs returns the defaults of a typical four square count.
func DefaultInputs() Defaults {
	return Defaults{
		SquareCount:        4,
		Live:               50,
		Dead:               0,
		DilutionFactor:     2.0,
		StockVolumeMl:      5.0,
		TargetCellsPerDish: 5.0e5,
		DispenseVolumeMl:   2.0,
	}
}
