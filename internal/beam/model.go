package beam

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gomdm/internal/section"
)

// Model is a validated beam ready for analysis. It is immutable once built.
type Model struct {
	Name   string
	Joints []Joint  // input order; the index is the joint's ordinal position
	Spans  []Span   // topology order with derived Inertia
	Chain  []string // joint labels from one end to the other

	topo   *Topology
	joints map[string]int
	spans  map[SpanKey]int
	loads  map[SpanKey]Load
}

// Build validates the input and derives section properties.
// Topology problems are returned alone, before anything else is checked;
// geometry and load problems are collected per offending entity.
func (in *Input) Build() (*Model, error) {
	topo, err := BuildTopology(in.Joints)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Name:   in.Name,
		Joints: in.Joints,
		Chain:  topo.Chain,
		topo:   topo,
		joints: make(map[string]int, len(in.Joints)),
		spans:  make(map[SpanKey]int, len(topo.Pairs)),
		loads:  make(map[SpanKey]Load, len(in.Loads)),
	}
	for i, j := range in.Joints {
		m.joints[j.Label] = i
	}

	pairs := make(map[SpanKey]bool, len(topo.Pairs))
	for _, p := range topo.Pairs {
		pairs[p.Key()] = true
	}
	defined := make(map[SpanKey]Span, len(in.Spans))
	for _, s := range in.Spans {
		key := s.Key()
		if !pairs[key] {
			return nil, &TopologyError{Joint: s.From, Reason: fmt.Sprintf("span %s does not connect adjacent joints", s.Name())}
		}
		if _, dup := defined[key]; dup {
			return nil, &TopologyError{Joint: s.From, Reason: fmt.Sprintf("span %s is defined twice", s.Name())}
		}
		defined[key] = s
	}

	var errs []error
	for _, p := range topo.Pairs {
		entity := "span " + p.From + "-" + p.To
		s, ok := defined[p.Key()]
		if !ok {
			errs = append(errs, &section.InvalidGeometryError{Entity: entity, Field: "length", Reason: "is missing (no span definition)"})
			continue
		}
		s.From, s.To = p.From, p.To

		if !(s.Length > 0) || math.IsInf(s.Length, 0) {
			errs = append(errs, &section.InvalidGeometryError{Entity: entity, Field: "length", Value: s.Length})
		}
		inertia, err := s.Section.MomentOfInertia()
		if err != nil {
			errs = append(errs, withEntity(err, entity))
		}
		s.Inertia = inertia

		m.spans[p.Key()] = len(m.Spans)
		m.Spans = append(m.Spans, s)
	}

	for _, l := range in.Loads {
		if err := m.addLoad(l); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// addLoad validates l and stores it in the orientation of its span
func (m *Model) addLoad(l Load) error {
	name := l.From + "-" + l.To
	idx, ok := m.spans[l.Key()]
	if !ok {
		return &InvalidLoadError{Span: name, Reason: "no such span"}
	}
	s := m.Spans[idx]
	if _, dup := m.loads[l.Key()]; dup {
		return &InvalidLoadError{Span: s.Name(), Reason: "only one load per span is supported"}
	}
	if !l.Type.Valid() {
		return &InvalidLoadError{Span: s.Name(), Reason: "missing or unknown load type"}
	}
	if !(l.Magnitude >= 0) || math.IsInf(l.Magnitude, 0) {
		return &InvalidLoadError{Span: s.Name(), Reason: fmt.Sprintf("magnitude must be zero or positive (got %g)", l.Magnitude)}
	}

	switch l.Type {
	case UniformDistributed:
		l.Distance = 0
	case Point:
		if !(s.Length > 0) {
			// reported as a geometry error already
			return nil
		}
		if !(l.Distance >= 0 && l.Distance <= s.Length) {
			return &InvalidLoadError{Span: s.Name(), Reason: fmt.Sprintf("distance %g is outside the span (0 to %g)", l.Distance, s.Length)}
		}
		if l.From != s.From {
			l.Distance = s.Length - l.Distance
		}
	}
	l.From, l.To = s.From, s.To
	m.loads[l.Key()] = l
	return nil
}

// withEntity labels section errors with the span they belong to
func withEntity(err error, entity string) error {
	var ge *section.InvalidGeometryError
	if errors.As(err, &ge) {
		// section errors may be joined; relabel every one of them
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			var errs []error
			for _, e := range joined.Unwrap() {
				errs = append(errs, withEntity(e, entity))
			}
			return errors.Join(errs...)
		}
		labelled := *ge
		labelled.Entity = entity
		return &labelled
	}
	return fmt.Errorf("%s: %w", entity, err)
}

// Joint returns the joint with the given label
func (m *Model) Joint(label string) (Joint, bool) {
	i, ok := m.joints[label]
	if !ok {
		return Joint{}, false
	}
	return m.Joints[i], true
}

// Span returns the span with the given key
func (m *Model) Span(key SpanKey) (Span, bool) {
	i, ok := m.spans[key]
	if !ok {
		return Span{}, false
	}
	return m.Spans[i], true
}

// Load returns the load on a span, oriented like the span
func (m *Model) Load(key SpanKey) (Load, bool) {
	l, ok := m.loads[key]
	return l, ok
}

// SpansAt returns the spans meeting at a joint, in discovery order
func (m *Model) SpansAt(label string) []Span {
	var out []Span
	for _, n := range m.topo.Neighbors(label) {
		if s, ok := m.Span(KeyOf(label, n)); ok {
			out = append(out, s)
		}
	}
	return out
}

// TotalLength is the sum of all span lengths
func (m *Model) TotalLength() float64 {
	var total float64
	for _, s := range m.Spans {
		total += s.Length
	}
	return total
}

// Loads returns the loads in span order, oriented like their spans
func (m *Model) Loads() []Load {
	out := make([]Load, 0, len(m.loads))
	for _, s := range m.Spans {
		if l, ok := m.loads[s.Key()]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Input rebuilds a normalised input from the model
func (m *Model) Input() *Input {
	return &Input{
		Name:   m.Name,
		Joints: m.Joints,
		Spans:  m.Spans,
		Loads:  m.Loads(),
	}
}
