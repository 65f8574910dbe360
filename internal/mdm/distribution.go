package mdm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// DistributionFactor is the share of a joint's unbalanced moment taken by
// one member-end
type DistributionFactor struct {
	End   MemberEnd
	Value float64
}

// DistributionFactors computes the factor of every member-end, joint by joint
// in input order.
//
//   - Fixed and Free joints do not rotate: 0.
//   - A Pin or Roller with a single span absorbs everything: 1.
//   - Otherwise k/Σk over the spans at the joint, 0 when Σk is 0.
func DistributionFactors(m *beam.Model, stiffness []StiffnessFactor) []DistributionFactor {
	k := make(map[beam.SpanKey]float64, len(stiffness))
	for _, sf := range stiffness {
		k[sf.Span] = sf.Value
	}

	var out []DistributionFactor
	for _, j := range m.Joints {
		spans := m.SpansAt(j.Label)
		ks := make([]float64, len(spans))
		for i, s := range spans {
			ks[i] = k[s.Key()]
		}
		total := floats.Sum(ks)

		for i, s := range spans {
			end := MemberEnd{From: j.Label, To: s.Far(j.Label)}
			var df float64
			switch j.Support {
			case beam.Fixed, beam.Free:
				df = 0
			case beam.Pin, beam.Roller:
				switch {
				case len(spans) == 1:
					df = 1
				case total == 0:
					df = 0
				default:
					df = ks[i] / total
				}
			}
			out = append(out, DistributionFactor{End: end, Value: df})
		}
	}
	return out
}
