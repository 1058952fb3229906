// Package output renders and exports calculation results.
package output

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// TimeLayout is the layout of the calculation timestamp in exported tables.
const TimeLayout = "2006-01-02 15:04:05"

// numFmt says how a column value is displayed.
type numFmt int

const (
	fmtPlain numFmt = iota
	fmtSci          // 1.00e+06
	fmtFixed2       // 12.34
	fmtFixed3       // 12.345
)

// column is one header/value pair of the export row.
type column struct {
	Header string
	Value  any
	Format numFmt
}

// Text returns the value as it appears in a CSV cell.
func (c column) Text() string {
	switch v := c.Value.(type) {
	case float64:
		switch c.Format {
		case fmtSci:
			return fmt.Sprintf("%.2e", v)
		case fmtFixed2:
			return fmt.Sprintf("%.2f", v)
		case fmtFixed3:
			return fmt.Sprintf("%.3f", v)
		default:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// columns lays out inputs, per-square counts and results in export order.
func columns(rec *models.ExportRecord) []column {
	req, res := rec.Request, rec.Result

	cols := []column{
		{"Calculated At", rec.CalculatedAt.Format(TimeLayout), fmtPlain},
		{"Squares Counted", req.SquareCount, fmtPlain},
		{"Dilution Factor", req.DilutionFactor, fmtPlain},
		{"Stock Volume (mL)", req.StockVolumeMl, fmtPlain},
		{"Target Cells", req.TargetCellsPerDish, fmtSci},
		{"Dispense Volume (mL)", req.DispenseVolumeMl, fmtPlain},
	}

	for i, c := range req.Counts {
		cols = append(cols,
			column{fmt.Sprintf("Live Cell (Square %d)", i+1), c.Live, fmtPlain},
			column{fmt.Sprintf("Dead Cell (Square %d)", i+1), c.Dead, fmtPlain},
		)
	}

	return append(cols,
		column{"Live Concentration (cells/mL)", res.CellsPerMl, fmtSci},
		column{"Total Live Cells", res.TotalLiveCellsInStock, fmtSci},
		column{"Viability (%)", res.ViabilityPercent, fmtFixed2},
		column{"Counted Live (Total)", res.TotalCountedLive, fmtPlain},
		column{"Counted Dead (Total)", res.TotalCountedDead, fmtPlain},
		column{"Media To Add (mL)", res.MediaToAddMl, fmtFixed3},
		column{"Final Suspension Volume (mL)", res.TotalWorkingVolumeMl, fmtFixed3},
		column{"Total Dishes", res.FinalDishCount, fmtPlain},
		column{"Working Concentration (cells/mL)", res.WorkingConcentrationPerMl, fmtSci},
	)
}
