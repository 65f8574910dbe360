package beam

import (
	"fmt"
	"strings"
)

// LoadType is the kind of load applied to a span
type LoadType int

const (
	// UniformDistributed covers the whole span with intensity Magnitude
	UniformDistributed LoadType = iota + 1
	// Point is a concentrated force at Distance from the span's from end
	Point
)

// String returns the lower-case name used in input files
func (t LoadType) String() string {
	switch t {
	case UniformDistributed:
		return "udl"
	case Point:
		return "point"
	default:
		return fmt.Sprintf("load(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared load types
func (t LoadType) Valid() bool {
	return t == UniformDistributed || t == Point
}

// ParseLoadType converts an input file name into a LoadType
func ParseLoadType(name string) (LoadType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "udl", "uniform", "uniformdistributed", "distributed":
		return UniformDistributed, nil
	case "point", "point load", "concentrated":
		return Point, nil
	}
	return 0, fmt.Errorf("unknown load type %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (t LoadType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *LoadType) UnmarshalText(text []byte) error {
	lt, err := ParseLoadType(string(text))
	if err != nil {
		return err
	}
	*t = lt
	return nil
}

// Load is a single load bound to the span between From and To
type Load struct {
	From      string   `json:"from" yaml:"from"`
	To        string   `json:"to" yaml:"to"`
	Type      LoadType `json:"type" yaml:"type"`
	Magnitude float64  `json:"magnitude" yaml:"magnitude"` // w (force/length) or P (force)
	Distance  float64  `json:"distance,omitempty" yaml:"distance,omitempty"`

	// Case is an optional load case tag (D, L, Lr, W, E, R) used to factor
	// the magnitude by a load combination
	Case string `json:"case,omitempty" yaml:"case,omitempty"`
}

// Key returns the unordered key of the loaded span
func (l Load) Key() SpanKey {
	return KeyOf(l.From, l.To)
}
