package beam

import (
	"fmt"
	"strings"
)

// Support is the restraint condition at a joint
type Support int

const (
	// Fixed joints never rotate; they only receive carry-over
	Fixed Support = iota + 1
	// Pin joints rotate freely and are balanced every iteration
	Pin
	// Roller joints behave like Pin joints for moment distribution
	Roller
	// Free joints are unsupported cantilever tips
	Free
)

// String returns the lower-case name used in input files
func (s Support) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case Pin:
		return "pin"
	case Roller:
		return "roller"
	case Free:
		return "free"
	default:
		return fmt.Sprintf("support(%d)", int(s))
	}
}

// Valid reports whether s is one of the declared supports
func (s Support) Valid() bool {
	return s >= Fixed && s <= Free
}

// Rotates reports whether the joint takes part in balancing
func (s Support) Rotates() bool {
	switch s {
	case Pin, Roller:
		return true
	case Fixed, Free:
		return false
	}
	return false
}

// ParseSupport converts an input file name into a Support
func ParseSupport(name string) (Support, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fixed":
		return Fixed, nil
	case "pin", "pinned", "hinge":
		return Pin, nil
	case "roller":
		return Roller, nil
	case "free", "none", "nosupport":
		return Free, nil
	}
	return 0, fmt.Errorf("unknown support %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (s Support) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Support) UnmarshalText(text []byte) error {
	support, err := ParseSupport(string(text))
	if err != nil {
		return err
	}
	*s = support
	return nil
}

// Joint is a node of the beam chain
type Joint struct {
	Label     string   `json:"label" yaml:"label"`
	Neighbors []string `json:"neighbors" yaml:"neighbors"`
	Support   Support  `json:"support" yaml:"support"`
}
