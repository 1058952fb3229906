package output

import (
	"testing"
	"time"

	"github.com/ukaji3/cellcount-go/pkg/cellcount"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

func exampleRecord(t *testing.T) *models.ExportRecord {
	t.Helper()
	req := models.CalculationRequest{
		SquareCount:        2,
		Counts:             []models.CountInput{{Live: 50, Dead: 2}, {Live: 50, Dead: 0}},
		DilutionFactor:     2.0,
		StockVolumeMl:      5.0,
		TargetCellsPerDish: 500000,
		DispenseVolumeMl:   2.0,
	}
	res, err := cellcount.Calculate(req)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	return &models.ExportRecord{
		ID:           "6f1c2f0e-6d3c-4c55-9d47-0b3f0a0e7f11",
		CalculatedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Request:      req,
		Result:       *res,
	}
}
