package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
	"github.com/xuri/excelize/v2"
)

// CountsName is the workbook defined name that marks the count table.
const CountsName = "Counts"

// countsArea is a cell range in 1-based coordinates, bounds inclusive.
type countsArea struct {
	R1, C1, R2, C2 int
}

// ReadCountsFile opens a counting workbook and extracts its counts.
// An empty sheet name selects the first sheet.
func ReadCountsFile(path, sheetName string) ([]models.CountInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	return ExtractCounts(f, sheetName)
}

// ExtractCounts reads one square per row: live in the first column, dead in the second.
// Rows whose first cell is not a count (headers, notes) and blank rows are skipped.
// When the workbook defines CountsName on this sheet, only that range is read.
func ExtractCounts(f *excelize.File, sheetName string) ([]models.CountInput, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	area := findCountsArea(f, sheetName)
	firstCol := 1
	if area != nil {
		firstCol = area.C1
	}

	var counts []models.CountInput
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		if area != nil && (rowNum < area.R1 || rowNum > area.R2) {
			continue
		}

		live := cellAt(row, firstCol)
		if live == "" {
			continue
		}
		liveN, err := parseCount(live)
		if err != nil {
			if area != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", sheetName, rowNum, err)
			}
			continue
		}

		var deadN int
		if dead := cellAt(row, firstCol+1); dead != "" {
			deadN, err = parseCount(dead)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", sheetName, rowNum, err)
			}
		}

		counts = append(counts, models.CountInput{Live: liveN, Dead: deadN})
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("sheet %q: no counts found", sheetName)
	}
	return counts, nil
}

func cellAt(row []string, col int) string {
	if col-1 >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}

// findCountsArea looks up the CountsName defined name for a sheet.
func findCountsArea(f *excelize.File, sheetName string) *countsArea {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, CountsName) {
			continue
		}
		sheet, area := parseAreaReference(dn.RefersTo)
		if area != nil && sheet == sheetName {
			return area
		}
	}
	return nil
}

// parseAreaReference parses 'SheetName'!$A$2:$B$5 or SheetName!$A$2:$B$5.
func parseAreaReference(ref string) (string, *countsArea) {
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", nil
	}
	sheet := strings.Trim(strings.TrimPrefix(ref[:idx], "="), "'")
	rangeStr := strings.ReplaceAll(ref[idx+1:], "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return "", nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return "", nil
	}

	return sheet, &countsArea{R1: startRow, C1: startCol, R2: endRow, C2: endCol}
}
