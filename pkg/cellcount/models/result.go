package models

// CalculationResult holds every quantity derived from a CalculationRequest.
type CalculationResult struct {
	// CellsPerMl is the live cell concentration of the stock suspension.
	CellsPerMl float64 `json:"cells_per_ml"`
	// TotalLiveCellsInStock is the number of live cells in the whole stock.
	TotalLiveCellsInStock float64 `json:"total_live_cells_in_stock"`
	// StockVolumeMl echoes the stock volume the result was computed for.
	StockVolumeMl float64 `json:"stock_volume_ml"`

	TotalCountedLive int `json:"total_counted_live"`
	TotalCountedDead int `json:"total_counted_dead"`
	TotalCountedAll  int `json:"total_counted_all"`
	// ViabilityPercent is the live share of counted cells, in [0, 100].
	ViabilityPercent float64 `json:"viability_percent"`

	// TargetCellsPerDish echoes the requested cells per dish.
	TargetCellsPerDish float64 `json:"target_cells_per_dish"`
	// RequiredVolumePerDishMl is the stock volume holding one dish worth of cells.
	RequiredVolumePerDishMl float64 `json:"required_volume_per_dish_ml"`
	// AvailableDishesFromStock is the number of whole dishes the stock supports.
	AvailableDishesFromStock int `json:"available_dishes_from_stock"`

	// DispenseVolumeMl echoes the volume dispensed per dish.
	DispenseVolumeMl float64 `json:"dispense_volume_ml"`
	// WorkingConcentrationPerMl is the concentration the working suspension must have.
	WorkingConcentrationPerMl float64 `json:"working_concentration_per_ml"`
	// TotalWorkingVolumeMl is the working suspension volume made from the whole stock.
	TotalWorkingVolumeMl float64 `json:"total_working_volume_ml"`
	// MediaToAddMl is the fresh media volume added to the stock.
	MediaToAddMl float64 `json:"media_to_add_ml"`
	// FinalDishCount is the number of completely filled dishes.
	FinalDishCount int `json:"final_dish_count"`
}
