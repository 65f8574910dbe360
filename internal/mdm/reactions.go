package mdm

import (
	"math"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// EndShear is the support force contributed by one span at each of its ends
type EndShear struct {
	Span   beam.SpanKey
	From   string
	To     string
	AtFrom float64
	AtTo   float64
}

// Reaction is the resultant support force at a joint
type Reaction struct {
	Joint    string
	Position float64 // distance from the first joint of the chain
	Value    float64
}

// EndShears computes the end forces of every span from its final end
// moments.
//
//	UDL w:      R_from = wL/2 + (M_from − M_to)/L,  R_to = wL/2 − (M_from − M_to)/L
//	Point P, a: R_from = P·b²(L+2a)/L³ + (M_to − M_from)/L,
//	            R_to   = P·a²(L+2b)/L³ − (M_to − M_from)/L
//
// An unloaded span contributes the moment term of the UDL form with w = 0.
func EndShears(m *beam.Model, total MomentState) []EndShear {
	out := make([]EndShear, 0, len(m.Spans))
	for _, s := range m.Spans {
		mFrom := total.Get(MemberEnd{From: s.From, To: s.To})
		mTo := total.Get(MemberEnd{From: s.To, To: s.From})
		l, _ := m.Load(s.Key())
		rFrom, rTo := endShear(l, s.Length, mFrom, mTo)
		out = append(out, EndShear{
			Span:   s.Key(),
			From:   s.From,
			To:     s.To,
			AtFrom: rFrom,
			AtTo:   rTo,
		})
	}
	return out
}

func endShear(l beam.Load, length, mFrom, mTo float64) (rFrom, rTo float64) {
	switch l.Type {
	case beam.Point:
		a := l.Distance
		b := length - a
		l3 := math.Pow(length, 3)
		dm := (mTo - mFrom) / length
		return l.Magnitude*b*b*(length+2*a)/l3 + dm,
			l.Magnitude*a*a*(length+2*b)/l3 - dm
	default:
		// UDL, or no load with Magnitude 0
		half := l.Magnitude * length / 2
		dm := (mFrom - mTo) / length
		return half + dm, half - dm
	}
}

// Reactions sums the end shears meeting at every joint, in joint input order
func Reactions(m *beam.Model, total MomentState) []Reaction {
	sum := make(map[string]float64, len(m.Joints))
	for _, es := range EndShears(m, total) {
		sum[es.From] += es.AtFrom
		sum[es.To] += es.AtTo
	}

	_, jointX := chainLayout(m)
	out := make([]Reaction, 0, len(m.Joints))
	for _, j := range m.Joints {
		out = append(out, Reaction{
			Joint:    j.Label,
			Position: jointX[j.Label],
			Value:    sum[j.Label],
		})
	}
	return out
}
