package jos3

import (
	"errors"
	"fmt"
)

// ErrUnsupportedShape is returned when a setter receives a value that is
// neither a scalar, a 17-length sequence nor a segment-keyed map.
var ErrUnsupportedShape = errors.New("jos3: unsupported input shape")

// ValidationError reports an anthropometric or environmental input outside
// its accepted range.
type ValidationError struct {
	Parameter string
	Value     any
	Accepted  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jos3: invalid %s %v: accepted %s", e.Parameter, e.Value, e.Accepted)
}

// UnsupportedEquationError reports an unknown BSA or BMR equation name.
type UnsupportedEquationError struct {
	Kind string
	Name string
}

func (e *UnsupportedEquationError) Error() string {
	return fmt.Sprintf("jos3: unsupported %s equation %q", e.Kind, e.Name)
}

// InvalidActivityRatioError reports a physical activity ratio below 1.
type InvalidActivityRatioError struct {
	Ratio float64
}

func (e *InvalidActivityRatioError) Error() string {
	return fmt.Sprintf("jos3: physical activity ratio %g is below 1", e.Ratio)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsUnsupportedEquation reports whether err wraps an *UnsupportedEquationError.
func IsUnsupportedEquation(err error) bool {
	var target *UnsupportedEquationError
	return errors.As(err, &target)
}

// IsInvalidActivityRatio reports whether err wraps an *InvalidActivityRatioError.
func IsInvalidActivityRatio(err error) bool {
	var target *InvalidActivityRatioError
	return errors.As(err, &target)
}
