package beam

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrTopology is matched by every TopologyError
	ErrTopology = errors.New("invalid topology")

	// ErrInvalidLoad is matched by every InvalidLoadError
	ErrInvalidLoad = errors.New("invalid load")
)

// TopologyError reports invalid joint connectivity or labels.
// It is raised before any computation starts.
type TopologyError struct {
	Joint  string // offending joint label, empty for whole-beam problems
	Reason string
}

func (e *TopologyError) Error() string {
	if e.Joint == "" {
		return fmt.Sprintf("topology: %s", e.Reason)
	}
	return fmt.Sprintf("topology: joint %q: %s", e.Joint, e.Reason)
}

// Unwrap lets errors.Is match ErrTopology
func (e *TopologyError) Unwrap() error {
	return ErrTopology
}

// InvalidLoadError reports a load that cannot be applied to its span
type InvalidLoadError struct {
	Span   string
	Reason string
}

func (e *InvalidLoadError) Error() string {
	return fmt.Sprintf("invalid load on span %s: %s", e.Span, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidLoad
func (e *InvalidLoadError) Unwrap() error {
	return ErrInvalidLoad
}
