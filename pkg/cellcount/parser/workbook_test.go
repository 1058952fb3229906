package parser

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
	"github.com/xuri/excelize/v2"
)

func saveWorkbook(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counts.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestReadCountsFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Live")
	f.SetCellValue(sheetName, "B1", "Dead")
	f.SetCellValue(sheetName, "A2", 50)
	f.SetCellValue(sheetName, "B2", 2)
	f.SetCellValue(sheetName, "A3", 48)
	// A4 left blank
	f.SetCellValue(sheetName, "A5", 52)
	f.SetCellValue(sheetName, "B5", 0)
	f.SetCellValue(sheetName, "A6", "counted by JS")

	counts, err := ReadCountsFile(saveWorkbook(t, f), "")
	if err != nil {
		t.Fatalf("ReadCountsFile failed: %v", err)
	}

	expected := []models.CountInput{{Live: 50, Dead: 2}, {Live: 48, Dead: 0}, {Live: 52, Dead: 0}}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("counts = %v, expected %v", counts, expected)
	}
}

func TestExtractCountsDefinedName(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Notes")
	f.SetCellValue(sheetName, "A2", 999)
	f.SetCellValue(sheetName, "C3", 10)
	f.SetCellValue(sheetName, "D3", 1)
	f.SetCellValue(sheetName, "C4", 12)
	f.SetCellValue(sheetName, "D4", 3)
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     CountsName,
		RefersTo: "Sheet1!$C$3:$D$4",
	}); err != nil {
		t.Fatalf("SetDefinedName failed: %v", err)
	}

	f2, err := excelize.OpenFile(saveWorkbook(t, f))
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	counts, err := ExtractCounts(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractCounts failed: %v", err)
	}

	expected := []models.CountInput{{Live: 10, Dead: 1}, {Live: 12, Dead: 3}}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("counts = %v, expected %v", counts, expected)
	}
}

func TestExtractCountsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := ExtractCounts(f, "Sheet1"); err == nil {
		t.Error("expected error for empty sheet")
	}
	if _, err := ExtractCounts(f, "Missing"); err == nil {
		t.Error("expected error for missing sheet")
	}

	f.SetCellValue("Sheet1", "A1", 10)
	f.SetCellValue("Sheet1", "B1", "many")
	if _, err := ExtractCounts(f, "Sheet1"); err == nil {
		t.Error("expected error for non-numeric dead count")
	}
}

func TestParseAreaReference(t *testing.T) {
	tests := []struct {
		ref      string
		sheet    string
		expected *countsArea
	}{
		{"Sheet1!$A$2:$B$5", "Sheet1", &countsArea{R1: 2, C1: 1, R2: 5, C2: 2}},
		{"'My Counts'!$C$3:$D$4", "My Counts", &countsArea{R1: 3, C1: 3, R2: 4, C2: 4}},
		{"Sheet1!A1", "", nil},
		{"A1:B2", "", nil},
	}

	for _, tt := range tests {
		sheet, area := parseAreaReference(tt.ref)
		if sheet != tt.sheet || !reflect.DeepEqual(area, tt.expected) {
			t.Errorf("parseAreaReference(%q) = %q, %v, expected %q, %v", tt.ref, sheet, area, tt.sheet, tt.expected)
		}
	}
}
