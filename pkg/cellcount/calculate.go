package cellcount

import (
	"math"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// Calculate derives stock concentration, viability and the working suspension
// recipe from a request. On failure it returns a nil result and a *Failure.
func Calculate(req models.CalculationRequest) (*models.CalculationResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var live, dead int
	for _, c := range req.Counts {
		live += c.Live
		dead += c.Dead
	}
	all := live + dead

	avgLive := float64(live) / float64(req.SquareCount)

	viability := 0.0
	if all > 0 {
		viability = float64(live) / float64(all) * 100
	}

	cellsPerMl := avgLive * req.DilutionFactor * ChamberVolumeFactor
	totalLive := cellsPerMl * req.StockVolumeMl

	if cellsPerMl == 0 {
		return nil, zeroConcentration()
	}
	if !finite(cellsPerMl) || !finite(totalLive) {
		return nil, invalidInput("cell concentration overflows: dilutionFactor or stockVolumeMl too large")
	}

	if req.TargetCellsPerDish == 0 {
		return nil, invalidInput("targetCellsPerDish must be > 0")
	}
	requiredVolume := req.TargetCellsPerDish / cellsPerMl
	availableDishes, ok := dishCount(totalLive / req.TargetCellsPerDish)
	if !ok {
		return nil, invalidInput("targetCellsPerDish too small: dish count overflows")
	}

	if !(req.DispenseVolumeMl > 0) || math.IsInf(req.DispenseVolumeMl, 0) {
		return nil, invalidInput("dispenseVolumeMl must be > 0")
	}
	working := req.TargetCellsPerDish / req.DispenseVolumeMl

	if cellsPerMl < working {
		return nil, infeasible(cellsPerMl, working)
	}

	totalWorking := totalLive / working
	if !finite(totalWorking) {
		return nil, invalidInput("working volume overflows: targetCellsPerDish too small for dispenseVolumeMl")
	}
	media, fail := mediaToAdd(totalWorking, req.StockVolumeMl)
	if fail != nil {
		return nil, fail
	}
	finalDishes, ok := dishCount(totalWorking / req.DispenseVolumeMl)
	if !ok {
		return nil, invalidInput("dispenseVolumeMl too small: dish count overflows")
	}

	return &models.CalculationResult{
		CellsPerMl:                cellsPerMl,
		TotalLiveCellsInStock:     totalLive,
		StockVolumeMl:             req.StockVolumeMl,
		TotalCountedLive:          live,
		TotalCountedDead:          dead,
		TotalCountedAll:           all,
		ViabilityPercent:          viability,
		TargetCellsPerDish:        req.TargetCellsPerDish,
		RequiredVolumePerDishMl:   requiredVolume,
		AvailableDishesFromStock:  availableDishes,
		DispenseVolumeMl:          req.DispenseVolumeMl,
		WorkingConcentrationPerMl: working,
		TotalWorkingVolumeMl:      totalWorking,
		MediaToAddMl:              media,
		FinalDishCount:            finalDishes,
	}, nil
}

// dishCount truncates a non-negative dish quotient, reporting false when it
// does not fit an int.
func dishCount(q float64) (int, bool) {
	if !finite(q) || q < 0 || q >= math.MaxInt {
		return 0, false
	}
	return int(math.Floor(q)), true
}

// mediaToAdd is the media volume taking the stock up to the working volume.
// After the feasibility check it can only be negative by float round-off,
// which is clamped to zero; anything larger is a broken invariant.
func mediaToAdd(totalWorking, stock float64) (float64, *Failure) {
	media := totalWorking - stock
	if media >= 0 {
		return media, nil
	}
	if -media > mediaRoundOff*stock {
		return 0, invariantViolation("media to add is negative (%g mL)", media)
	}
	return 0, nil
}

// checkRequest rejects request shapes the arithmetic cannot handle.
// A zero target and the dispense volume are checked later, right before they are divided by.
func checkRequest(req models.CalculationRequest) *Failure {
	if req.SquareCount <= 0 {
		return invalidInput("squareCount must be > 0")
	}
	if len(req.Counts) != req.SquareCount {
		return invalidInput("counts has %d entries, squareCount is %d", len(req.Counts), req.SquareCount)
	}
	for i, c := range req.Counts {
		if c.Live < 0 || c.Dead < 0 {
			return invalidInput("square %d has a negative count", i+1)
		}
	}
	if !finite(req.DilutionFactor) || req.DilutionFactor < 0 {
		return invalidInput("dilutionFactor must be > 0")
	}
	if !finite(req.StockVolumeMl) || req.StockVolumeMl < 0 {
		return invalidInput("stockVolumeMl must be >= 0")
	}
	if !finite(req.TargetCellsPerDish) || req.TargetCellsPerDish < 0 {
		return invalidInput("targetCellsPerDish must be >= 0")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
