package models

import "time"

// ExportRecord bundles a calculation with the inputs that produced it.
type ExportRecord struct {
	// ID identifies the calculation run.
	ID string `json:"id"`
	// CalculatedAt is when the calculation ran.
	CalculatedAt time.Time `json:"calculated_at"`
	// Request is the input snapshot.
	Request CalculationRequest `json:"request"`
	// Result is the derived result set.
	Result CalculationResult `json:"result"`
}
