package mdm

import (
	"unicode/utf8"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// MemberEnd is the end of a span at joint From, looking toward To
type MemberEnd struct {
	From string
	To   string
}

// Opposite returns the other end of the same span
func (e MemberEnd) Opposite() MemberEnd {
	return MemberEnd{From: e.To, To: e.From}
}

// Span returns the unordered key of the span the end belongs to
func (e MemberEnd) Span() beam.SpanKey {
	return beam.KeyOf(e.From, e.To)
}

// String returns "AB" for single-character labels and "A-B" otherwise
func (e MemberEnd) String() string {
	if utf8.RuneCountInString(e.From) == 1 && utf8.RuneCountInString(e.To) == 1 {
		return e.From + e.To
	}
	return e.From + "-" + e.To
}

// layout fixes the order of member-ends: for every span in topology order,
// (from, to) then (to, from)
type layout struct {
	ends  []MemberEnd
	index map[MemberEnd]int
}

func newLayout(m *beam.Model) *layout {
	l := &layout{
		ends:  make([]MemberEnd, 0, 2*len(m.Spans)),
		index: make(map[MemberEnd]int, 2*len(m.Spans)),
	}
	for _, s := range m.Spans {
		for _, e := range []MemberEnd{{From: s.From, To: s.To}, {From: s.To, To: s.From}} {
			l.index[e] = len(l.ends)
			l.ends = append(l.ends, e)
		}
	}
	return l
}

// MomentState maps every member-end to a moment. Values are never modified
// after construction; each solver iteration produces a new state.
type MomentState struct {
	layout *layout
	values []float64
}

func (l *layout) state(values []float64) MomentState {
	return MomentState{layout: l, values: values}
}

func (l *layout) zero() []float64 {
	return make([]float64, len(l.ends))
}

// Get returns the moment at a member-end, 0 for unknown ends
func (s MomentState) Get(e MemberEnd) float64 {
	if s.layout == nil {
		return 0
	}
	i, ok := s.layout.index[e]
	if !ok {
		return 0
	}
	return s.values[i]
}

// Ends returns the member-ends in display order
func (s MomentState) Ends() []MemberEnd {
	if s.layout == nil {
		return nil
	}
	out := make([]MemberEnd, len(s.layout.ends))
	copy(out, s.layout.ends)
	return out
}

// Values returns a copy of the moments in the order of Ends
func (s MomentState) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of member-ends
func (s MomentState) Len() int {
	return len(s.values)
}
