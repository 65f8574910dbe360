package mdm

import (
	"iter"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// Sample is one point of a bending-moment or shear-force diagram
type Sample struct {
	Span  beam.SpanKey
	X     float64 // distance from the first joint of the chain
	Local float64 // distance from the span's from joint
	Value float64
}

// segment places a span on the chain axis
type segment struct {
	span     beam.Span
	load     beam.Load // zero Type when unloaded
	start    float64
	end      float64
	reversed bool // span.From sits at end
}

// global maps a distance from span.From to the chain axis. The ends map
// exactly onto the joint positions.
func (s segment) global(local float64) float64 {
	switch {
	case local == 0 && s.reversed, local == s.span.Length && !s.reversed:
		return s.end
	case local == 0, local == s.span.Length:
		return s.start
	case s.reversed:
		return s.end - local
	}
	return s.start + local
}

func (s segment) local(x float64) float64 {
	switch {
	case x == s.start && s.reversed, x == s.end && !s.reversed:
		return s.span.Length
	case x == s.start, x == s.end:
		return 0
	case s.reversed:
		return s.end - x
	}
	return x - s.start
}

// chainLayout walks the chain from its first joint and returns the spans in
// walking order with the position of every joint
func chainLayout(m *beam.Model) ([]segment, map[string]float64) {
	jointX := make(map[string]float64, len(m.Chain))
	segs := make([]segment, 0, len(m.Spans))

	var x float64
	for i, label := range m.Chain {
		jointX[label] = x
		if i == len(m.Chain)-1 {
			break
		}
		s, _ := m.Span(beam.KeyOf(label, m.Chain[i+1]))
		l, _ := m.Load(s.Key())
		seg := segment{
			span:     s,
			load:     l,
			start:    x,
			end:      x + s.Length,
			reversed: s.From != label,
		}
		segs = append(segs, seg)
		x = seg.end
	}
	return segs, jointX
}

// SpanMoment evaluates the bending moment at distance x from the from end of
// a span: the linear interpolation of the end moments plus the simply
// supported moment of the load. M(0) = mFrom and M(L) = mTo exactly.
func SpanMoment(l beam.Load, length, mFrom, mTo, x float64) float64 {
	t := x / length
	m := mFrom*(1-t) + mTo*t

	switch l.Type {
	case beam.UniformDistributed:
		m += l.Magnitude * x * (length - x) / 2
	case beam.Point:
		a := l.Distance
		if x <= a {
			m += l.Magnitude * (length - a) * x / length
		} else {
			m += l.Magnitude * a * (length - x) / length
		}
	}
	return m
}

// localGrid divides [0, L] into n segments and adds an interior point-load
// position when it does not already fall on the grid
func localGrid(length float64, n int, l beam.Load) []float64 {
	g := floats.Span(make([]float64, n+1), 0, length)
	g[0], g[n] = 0, length

	if l.Type == beam.Point && l.Distance > 0 && l.Distance < length {
		if i, found := slices.BinarySearch(g, l.Distance); !found {
			g = slices.Insert(g, i, l.Distance)
		}
	}
	return g
}

// BendingMoment returns the bending-moment samples along the chain.
// Every span yields Options.Samples+1 points, plus the point-load position.
// The sequence can be ranged over any number of times.
func (r *Result) BendingMoment() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for _, seg := range r.segments {
			s := seg.span
			mFrom := r.Moment(s.From, s.To)
			mTo := r.Moment(s.To, s.From)

			grid := localGrid(s.Length, r.Options.Samples, seg.load)
			if seg.reversed {
				slices.Reverse(grid)
			}
			for _, x := range grid {
				sample := Sample{
					Span:  s.Key(),
					X:     seg.global(x),
					Local: x,
					Value: SpanMoment(seg.load, s.Length, mFrom, mTo, x),
				}
				if !yield(sample) {
					return
				}
			}
		}
	}
}

// ShearAt returns the shear force at position x on the chain axis. Reactions
// and point loads located exactly at x are included only when right is true.
func (r *Result) ShearAt(x float64, right bool) float64 {
	included := func(pos float64) bool {
		return pos < x || (right && pos == x)
	}

	var v float64
	for _, rc := range r.Reactions {
		if included(rc.Position) {
			v += rc.Value
		}
	}
	for _, seg := range r.segments {
		switch seg.load.Type {
		case beam.Point:
			if included(seg.global(seg.load.Distance)) {
				v -= seg.load.Magnitude
			}
		case beam.UniformDistributed:
			covered := min(max(x-seg.start, 0), seg.span.Length)
			v -= seg.load.Magnitude * covered
		}
	}
	return v
}

// ShearForce returns the shear-force samples along the chain. Each span
// starts just right of its first joint and ends just left of its last one;
// a point load inside the span yields a sample on either side of the step.
func (r *Result) ShearForce() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for _, seg := range r.segments {
			key := seg.span.Key()
			emit := func(x float64, right bool) bool {
				return yield(Sample{
					Span:  key,
					X:     x,
					Local: seg.local(x),
					Value: r.ShearAt(x, right),
				})
			}

			n := r.Options.Samples
			xs := floats.Span(make([]float64, n+1), seg.start, seg.end)
			xs = xs[1:n]

			step := -1.0
			if seg.load.Type == beam.Point && seg.load.Distance > 0 && seg.load.Distance < seg.span.Length {
				step = seg.global(seg.load.Distance)
				if i, found := slices.BinarySearch(xs, step); !found {
					xs = slices.Insert(xs, i, step)
				}
			}

			if !emit(seg.start, true) {
				return
			}
			for _, x := range xs {
				if x == step {
					if !emit(x, false) || !emit(x, true) {
						return
					}
					continue
				}
				if !emit(x, true) {
					return
				}
			}
			if !emit(seg.end, false) {
				return
			}
		}
	}
}

// Extremes returns the samples with the smallest and largest values.
// ok is false for an empty sequence.
func Extremes(seq iter.Seq[Sample]) (lo, hi Sample, ok bool) {
	for s := range seq {
		if !ok {
			lo, hi, ok = s, s, true
			continue
		}
		if s.Value < lo.Value {
			lo = s
		}
		if s.Value > hi.Value {
			hi = s
		}
	}
	return lo, hi, ok
}

// Collect gathers a sample sequence into a slice
func Collect(seq iter.Seq[Sample]) []Sample {
	return slices.Collect(seq)
}
