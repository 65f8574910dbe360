package beam

import "github.com/alexiusacademia/gomdm/internal/section"

// SpanKey identifies a span independent of its orientation
type SpanKey struct {
	A, B string // A < B
}

// KeyOf returns the unordered key for the pair (from, to)
func KeyOf(from, to string) SpanKey {
	if to < from {
		from, to = to, from
	}
	return SpanKey{A: from, B: to}
}

func (k SpanKey) String() string {
	return k.A + "-" + k.B
}

// Span is a member between two adjacent joints
type Span struct {
	From    string          `json:"from" yaml:"from"`
	To      string          `json:"to" yaml:"to"`
	Length  float64         `json:"length" yaml:"length"`
	Section section.Section `json:"section" yaml:"section"`

	// Inertia is derived from Section when the model is built
	Inertia float64 `json:"-" yaml:"-"`
}

// Key returns the unordered key of the span
func (s Span) Key() SpanKey {
	return KeyOf(s.From, s.To)
}

// Name returns "from-to" in the span's own orientation
func (s Span) Name() string {
	return s.From + "-" + s.To
}

// Far returns the joint at the other end of the span from label
func (s Span) Far(label string) string {
	if s.From == label {
		return s.To
	}
	return s.From
}
