// Package validate checks calculation requests as they arrive from users.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// Validator is a wrapper around the actual validator.
// It registers the request rules and flattens field errors into one message.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(countsMatchSquares, models.CalculationRequest{})
	return &Validator{validator: v}
}

// Request returns an error naming every invalid field of req.
func (v *Validator) Request(req models.CalculationRequest) error {
	err := v.validator.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
}

func countsMatchSquares(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.CalculationRequest)
	if req.SquareCount > 0 && len(req.Counts) != req.SquareCount {
		sl.ReportError(req.Counts, "Counts", "Counts", "len_squares", "")
	}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "CalculationRequest.")
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len_squares":
		return fmt.Sprintf("%s must have one entry per counted square", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
