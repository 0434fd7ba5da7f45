package layout

import (
	"errors"
	"fmt"
)

// ErrCalculationFailed is the single error kind of the layout pipeline.
// Test for it with errors.Is.
var ErrCalculationFailed = errors.New("layout calculation failed")

// CalculationError carries the reason a layout could not be computed
type CalculationError struct {
	Reason string
	Err    error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrCalculationFailed, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrCalculationFailed, e.Reason)
}

// Is makes errors.Is(err, ErrCalculationFailed) hold for every CalculationError
func (e *CalculationError) Is(target error) bool {
	return target == ErrCalculationFailed
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

func calcErrorf(err error, format string, args ...any) error {
	return &CalculationError{Reason: fmt.Sprintf(format, args...), Err: err}
}
