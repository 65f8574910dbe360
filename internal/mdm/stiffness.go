package mdm

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// StiffnessRule selects how the stiffness coefficient c in k = c·I/L is chosen
type StiffnessRule int

const (
	// StandardStiffness uses 4I/L when either end is Fixed and 3I/L otherwise
	StandardStiffness StiffnessRule = iota
	// UniformStiffness uses 4I/L for every span
	UniformStiffness
)

func (r StiffnessRule) String() string {
	switch r {
	case StandardStiffness:
		return "standard"
	case UniformStiffness:
		return "uniform"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseStiffnessRule converts a configuration value into a StiffnessRule
func ParseStiffnessRule(name string) (StiffnessRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return StandardStiffness, nil
	case "uniform":
		return UniformStiffness, nil
	}
	return 0, fmt.Errorf("unknown stiffness rule %q (want standard or uniform)", name)
}

// StiffnessFactor is the relative rotational stiffness of one span
type StiffnessFactor struct {
	Span        beam.SpanKey
	From, To    string
	Inertia     float64
	Length      float64
	Coefficient float64 // 3 or 4
	Value       float64 // Coefficient·I/L
}

// StiffnessFactors computes k for every span in topology order
func StiffnessFactors(m *beam.Model, rule StiffnessRule) []StiffnessFactor {
	out := make([]StiffnessFactor, 0, len(m.Spans))
	for _, s := range m.Spans {
		c := 3.0
		if rule == UniformStiffness || isFixed(m, s.From) || isFixed(m, s.To) {
			c = 4.0
		}
		out = append(out, StiffnessFactor{
			Span:        s.Key(),
			From:        s.From,
			To:          s.To,
			Inertia:     s.Inertia,
			Length:      s.Length,
			Coefficient: c,
			Value:       c * s.Inertia / s.Length,
		})
	}
	return out
}

func isFixed(m *beam.Model, label string) bool {
	j, ok := m.Joint(label)
	return ok && j.Support == beam.Fixed
}
