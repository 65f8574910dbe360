package mdm

import (
	"errors"
	"fmt"
)

// ErrConvergenceLimitReached is matched by ConvergenceLimitError.
// It is a warning: the result still carries the best available moments.
var ErrConvergenceLimitReached = errors.New("convergence limit reached")

// ConvergenceLimitError reports that the iteration cap was hit before the
// largest balance dropped below the tolerance
type ConvergenceLimitError struct {
	Iterations int
	MaxBalance float64
	Tolerance  float64
}

func (e *ConvergenceLimitError) Error() string {
	return fmt.Sprintf("convergence limit reached after %d iterations: largest balance %g is not below tolerance %g",
		e.Iterations, e.MaxBalance, e.Tolerance)
}

// Unwrap lets errors.Is match ErrConvergenceLimitReached
func (e *ConvergenceLimitError) Unwrap() error {
	return ErrConvergenceLimitReached
}
