// Package models defines data structures for cell count calculations.
package models

// CountInput is the live/dead tally of one counted hemocytometer square.
type CountInput struct {
	// Live is the number of cells classified live.
	Live int `json:"live" validate:"gte=0"`
	// Dead is the number of cells classified dead.
	Dead int `json:"dead" validate:"gte=0"`
}

// CalculationRequest is the input snapshot for one calculation.
type CalculationRequest struct {
	// SquareCount is the number of squares counted.
	SquareCount int `json:"square_count" validate:"gt=0"`
	// Counts holds one entry per counted square, in counting order.
	Counts []CountInput `json:"counts" validate:"required,dive"`
	// DilutionFactor is the dilution applied to the sample before counting.
	DilutionFactor float64 `json:"dilution_factor" validate:"gt=0"`
	// StockVolumeMl is the total volume of stock suspension in mL.
	StockVolumeMl float64 `json:"stock_volume_ml" validate:"gte=0"`
	// TargetCellsPerDish is the number of live cells wanted in each dish.
	TargetCellsPerDish float64 `json:"target_cells_per_dish" validate:"gte=0"`
	// DispenseVolumeMl is the working suspension volume dispensed per dish in mL.
	DispenseVolumeMl float64 `json:"dispense_volume_ml" validate:"gt=0"`
}

// UniformCounts returns n squares that all carry the same tally.
func UniformCounts(n, live, dead int) []CountInput {
	counts := make([]CountInput, n)
	for i := range counts {
		counts[i] = CountInput{Live: live, Dead: dead}
	}
	return counts
}
