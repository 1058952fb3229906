package cellcount

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a request field outside its allowed range.
var ErrInvalidInput = errors.New("invalid input")

// ErrZeroConcentration indicates the counted live cell concentration is zero.
var ErrZeroConcentration = errors.New("zero live cell concentration")

// ErrInfeasible indicates the stock is too dilute to reach the working concentration.
var ErrInfeasible = errors.New("working suspension infeasible")

// ErrInvariantViolation indicates an internal consistency check failed.
var ErrInvariantViolation = errors.New("invariant violation")

// Failure reports why a calculation produced no result.
type Failure struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Reason describes the offending input, when there is one.
	Reason string
	// StockConcentration and WorkingConcentration are set for ErrInfeasible.
	StockConcentration   float64
	WorkingConcentration float64
}

func (f *Failure) Error() string {
	switch {
	case errors.Is(f.Kind, ErrInfeasible):
		return fmt.Sprintf("%v: stock concentration %g cells/mL is below working concentration %g cells/mL",
			f.Kind, f.StockConcentration, f.WorkingConcentration)
	case f.Reason != "":
		return fmt.Sprintf("%v: %s", f.Kind, f.Reason)
	default:
		return f.Kind.Error()
	}
}

func (f *Failure) Unwrap() error {
	return f.Kind
}

func invalidInput(format string, args ...any) *Failure {
	return &Failure{Kind: ErrInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

func zeroConcentration() *Failure {
	return &Failure{Kind: ErrZeroConcentration}
}

func infeasible(stock, working float64) *Failure {
	return &Failure{Kind: ErrInfeasible, StockConcentration: stock, WorkingConcentration: working}
}

func invariantViolation(format string, args ...any) *Failure {
	return &Failure{Kind: ErrInvariantViolation, Reason: fmt.Sprintf(format, args...)}
}
