package mdm

import (
	"errors"
	"fmt"
	"math"
)

// Defaults for the convergence parameters
const (
	DefaultMaxIterations = 30
	DefaultTolerance     = 0.01
	DefaultSamples       = 20
)

// ErrInvalidOptions is returned by Solve for unusable solver options
var ErrInvalidOptions = errors.New("invalid solver options")

// Options controls the solver and the diagram sampling
type Options struct {
	// MaxIterations caps the number of balance/carry-over iterations
	MaxIterations int
	// Tolerance is the largest balance amount accepted as converged
	Tolerance float64
	// Stiffness selects the stiffness coefficient rule
	Stiffness StiffnessRule
	// Samples is the number of segments each span is divided into for diagrams
	Samples int
}

// DefaultOptions returns the standard solver settings
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Stiffness:     StandardStiffness,
		Samples:       DefaultSamples,
	}
}

// Validate checks the options before any computation starts
func (o Options) Validate() error {
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1 (got %d)", ErrInvalidOptions, o.MaxIterations)
	}
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be positive (got %g)", ErrInvalidOptions, o.Tolerance)
	}
	if o.Samples < 1 {
		return fmt.Errorf("%w: samples per span must be at least 1 (got %d)", ErrInvalidOptions, o.Samples)
	}
	if o.Stiffness != StandardStiffness && o.Stiffness != UniformStiffness {
		return fmt.Errorf("%w: unknown stiffness rule %v", ErrInvalidOptions, o.Stiffness)
	}
	return nil
}
