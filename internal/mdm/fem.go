package mdm

import (
	"github.com/alexiusacademia/gomdm/internal/beam"
)

// FixedEndMoment holds the moments at both ends of a loaded span with both
// ends fully restrained. Negative values turn the from end counterclockwise.
type FixedEndMoment struct {
	Span   beam.SpanKey
	From   string
	To     string
	FromTo float64
	ToFrom float64
}

// FixedEndMoments computes the FEM of every loaded span, in topology order
func FixedEndMoments(m *beam.Model) []FixedEndMoment {
	var out []FixedEndMoment
	for _, s := range m.Spans {
		l, ok := m.Load(s.Key())
		if !ok {
			continue
		}
		ft, tf := FixedEnd(l, s.Length)
		out = append(out, FixedEndMoment{
			Span:   s.Key(),
			From:   s.From,
			To:     s.To,
			FromTo: ft,
			ToFrom: tf,
		})
	}
	return out
}

// FixedEnd returns (femFromTo, femToFrom) for a load on a span of length L.
//
//	UDL w:      ∓wL²/12
//	Point P, a: −P·a·b²/L², +P·a²·b/L² (∓PL/8 when centered)
func FixedEnd(l beam.Load, length float64) (fromTo, toFrom float64) {
	switch l.Type {
	case beam.UniformDistributed:
		fem := l.Magnitude * length * length / 12
		return -fem, fem
	case beam.Point:
		a := l.Distance
		b := length - a
		if a == b {
			fem := l.Magnitude * length / 8
			return -fem, fem
		}
		return -l.Magnitude * a * b * b / (length * length),
			l.Magnitude * a * a * b / (length * length)
	}
	return 0, 0
}
