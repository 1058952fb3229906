package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/cellcount-go/pkg/cellcount"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

const divider = "------------------------------------------------"

// WriteText renders a human-readable report of a result.
func WriteText(w io.Writer, res *models.CalculationResult) error {
	var b strings.Builder

	b.WriteString("[1] Current cell state\n")
	fmt.Fprintf(&b, "  Live concentration:      %.2e cells/mL\n", res.CellsPerMl)
	fmt.Fprintf(&b, "  Total live cells:        %.2e\n", res.TotalLiveCellsInStock)
	fmt.Fprintf(&b, "  Stock volume:            %.2f mL\n", res.StockVolumeMl)
	b.WriteString("  Viability (counted)\n")
	fmt.Fprintf(&b, "    Total cells:           %d\n", res.TotalCountedAll)
	fmt.Fprintf(&b, "    Live cells:            %d\n", res.TotalCountedLive)
	fmt.Fprintf(&b, "    Dead cells:            %d\n", res.TotalCountedDead)
	fmt.Fprintf(&b, "    Viability:             %.2f %%\n", res.ViabilityPercent)
	b.WriteString("\n")

	fmt.Fprintf(&b, "[2] Stock per dish (%.2e cells/dish)\n", res.TargetCellsPerDish)
	fmt.Fprintf(&b, "  Stock volume per dish:   %.3f mL\n", res.RequiredVolumePerDishMl)
	fmt.Fprintf(&b, "  Dishes from stock:       %d\n", res.AvailableDishesFromStock)
	b.WriteString("\n")

	b.WriteString("[3] Working suspension (uses all stock)\n")
	fmt.Fprintf(&b, "  1. Take all %.3f mL of stock suspension\n", res.StockVolumeMl)
	fmt.Fprintf(&b, "  2. Add %.3f mL of fresh media\n", res.MediaToAddMl)
	fmt.Fprintf(&b, "  %s\n", divider)
	fmt.Fprintf(&b, "  Makes %.3f mL of working suspension\n", res.TotalWorkingVolumeMl)
	fmt.Fprintf(&b, "  (working concentration: %.2e cells/mL)\n", res.WorkingConcentrationPerMl)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Dispense %.1f mL per dish for a total of %d dishes.\n", res.DispenseVolumeMl, res.FinalDishCount)

	_, err := io.WriteString(w, b.String())
	return err
}

// FailureMessage turns a calculation error into a line for the user.
func FailureMessage(err error) string {
	var f *cellcount.Failure
	if !errors.As(err, &f) {
		return fmt.Sprintf("calculation error: %v", err)
	}

	switch {
	case errors.Is(f, cellcount.ErrInfeasible):
		return fmt.Sprintf("cannot prepare working suspension: stock concentration (%.2e cells/mL) is lower than the required working concentration (%.2e cells/mL); adding media only dilutes further",
			f.StockConcentration, f.WorkingConcentration)
	case errors.Is(f, cellcount.ErrZeroConcentration):
		return "live cell concentration is zero: check the live counts and dilution factor"
	case errors.Is(f, cellcount.ErrInvalidInput):
		return fmt.Sprintf("invalid input: %s", f.Reason)
	default:
		return f.Error()
	}
}
