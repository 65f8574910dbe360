package section

import (
	"errors"
	"fmt"
	"strings"
)

// Shape identifies the cross-section family of a span
type Shape int

const (
	// Rectangular sections need Width and Height
	Rectangular Shape = iota + 1
	// Circular sections need Diameter
	Circular
	// Polygon sections need at least three Vertices
	Polygon
)

// String returns the lower-case name used in input files
func (s Shape) String() string {
	switch s {
	case Rectangular:
		return "rectangular"
	case Circular:
		return "circular"
	case Polygon:
		return "polygon"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape converts an input file name into a Shape
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rectangle", "rect":
		return Rectangular, nil
	case "circular", "circle":
		return Circular, nil
	case "polygon", "poly":
		return Polygon, nil
	}
	return 0, fmt.Errorf("unknown section shape %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Shape) UnmarshalText(text []byte) error {
	shape, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = shape
	return nil
}

// Section describes the cross-section of a prismatic span.
// Only the parameters of the selected Shape are read.
type Section struct {
	Shape Shape `json:"shape" yaml:"shape"`

	// Rectangular
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// Circular
	Diameter float64 `json:"diameter,omitempty" yaml:"diameter,omitempty"`

	// Polygon, counter-clockwise or clockwise, no holes
	Vertices []Point `json:"vertices,omitempty" yaml:"vertices,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Properties holds calculated geometric properties
type Properties struct {
	Area float64

	// Centroid location
	CentroidX float64
	CentroidY float64

	// Bounding box
	Width  float64
	Height float64

	// Second moment of area about the horizontal centroidal axis
	Inertia float64
}

// ErrInvalidGeometry is matched by every InvalidGeometryError
var ErrInvalidGeometry = errors.New("invalid geometry")

// InvalidGeometryError reports a missing, zero or negative geometric parameter
type InvalidGeometryError struct {
	Entity string // e.g. "span A-B"; empty for a bare section
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid geometry")
	if e.Entity != "" {
		sb.WriteString(" for ")
		sb.WriteString(e.Entity)
	}
	fmt.Fprintf(&sb, ": %s", e.Field)
	if e.Reason != "" {
		fmt.Fprintf(&sb, " %s", e.Reason)
	} else {
		fmt.Fprintf(&sb, " must be positive (got %g)", e.Value)
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrInvalidGeometry
func (e *InvalidGeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
