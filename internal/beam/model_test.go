package beam

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gomdm/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(b, h float64) section.Section {
	return section.Section{Shape: section.Rectangular, Width: b, Height: h}
}

func simpleInput() *Input {
	return &Input{
		Joints: []Joint{
			joint("A", Fixed, "B"),
			joint("B", Roller, "A", "C"),
			joint("C", Pin, "B"),
		},
		Spans: []Span{
			{From: "A", To: "B", Length: 6, Section: rect(0.3, 0.5)},
			{From: "B", To: "C", Length: 4, Section: rect(0.3, 0.5)},
		},
		Loads: []Load{
			{From: "A", To: "B", Type: UniformDistributed, Magnitude: 10},
		},
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	in, err := LoadFromFile("testdata/two-span.json")
	require.NoError(t, err)
	assert.Equal(t, "Two-span continuous beam", in.Name)
	assert.Equal(t, 40, in.Solver.MaxIterations)
	assert.Equal(t, 0.001, in.Solver.Tolerance)

	m, err := in.Build()
	require.NoError(t, err)

	require.Len(t, m.Spans, 2)
	assert.InDelta(t, 0.3*0.125/12, m.Spans[0].Inertia, 1e-15)
	assert.Greater(t, m.Spans[1].Inertia, 0.0)

	udl, ok := m.Load(KeyOf("A", "B"))
	require.True(t, ok)
	assert.Equal(t, UniformDistributed, udl.Type)
	assert.Equal(t, "D", udl.Case)

	// given from C, stored from B
	pl, ok := m.Load(KeyOf("B", "C"))
	require.True(t, ok)
	assert.Equal(t, Point, pl.Type)
	assert.Equal(t, "B", pl.From)
	assert.InDelta(t, 3.0, pl.Distance, 1e-12)
}

func TestLoadFromFile_YAML(t *testing.T) {
	in, err := LoadFromFile("testdata/three-span.yaml")
	require.NoError(t, err)

	m, err := in.Build()
	require.NoError(t, err)

	assert.Equal(t, "Three-span continuous beam", m.Name)
	assert.Equal(t, []string{"A", "B", "C", "D"}, m.Chain)
	assert.InDelta(t, 15.0, m.TotalLength(), 1e-12)

	d, ok := m.Joint("D")
	require.True(t, ok)
	assert.Equal(t, Pin, d.Support)
	_, ok = m.Joint("Z")
	assert.False(t, ok)

	spans := m.SpansAt("B")
	require.Len(t, spans, 2)
	assert.Equal(t, "A-B", spans[0].Name())
	assert.Equal(t, "B-C", spans[1].Name())
}

func TestLoadFromFile_BadFile(t *testing.T) {
	_, err := LoadFromFile("testdata/missing.json")
	assert.Error(t, err)
}

func TestBuild_ReportsEveryOffendingEntity(t *testing.T) {
	in := simpleInput()
	in.Spans[0].Length = -6
	in.Spans[1].Section = rect(0, 0.5)
	in.Loads = []Load{
		{From: "A", To: "B", Type: UniformDistributed, Magnitude: -1},
		{From: "B", To: "C", Type: Point, Magnitude: 5, Distance: 9},
	}

	_, err := in.Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, section.ErrInvalidGeometry))
	assert.True(t, errors.Is(err, ErrInvalidLoad))

	msg := err.Error()
	assert.Contains(t, msg, "span A-B: length")
	assert.Contains(t, msg, "span B-C: width")
	assert.Contains(t, msg, "magnitude must be zero or positive")
	assert.Contains(t, msg, "distance 9 is outside the span")
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *Input)
		target error
	}{
		{
			name: "span between non-adjacent joints",
			modify: func(in *Input) {
				in.Spans = append(in.Spans, Span{From: "A", To: "C", Length: 1, Section: rect(1, 1)})
			},
			target: ErrTopology,
		},
		{
			name:   "span defined twice",
			modify: func(in *Input) { in.Spans = append(in.Spans, in.Spans[0]) },
			target: ErrTopology,
		},
		{
			name:   "missing span definition",
			modify: func(in *Input) { in.Spans = in.Spans[:1] },
			target: section.ErrInvalidGeometry,
		},
		{
			name: "span section without a shape",
			modify: func(in *Input) {
				in.Spans[1].Section = section.Section{Width: 0.3, Height: 0.5}
			},
			target: section.ErrInvalidGeometry,
		},
		{
			name: "two loads on one span",
			modify: func(in *Input) {
				in.Loads = append(in.Loads, Load{From: "B", To: "A", Type: Point, Magnitude: 1, Distance: 1})
			},
			target: ErrInvalidLoad,
		},
		{
			name: "load on unknown span",
			modify: func(in *Input) {
				in.Loads = append(in.Loads, Load{From: "A", To: "C", Type: Point, Magnitude: 1})
			},
			target: ErrInvalidLoad,
		},
		{
			name: "load without type",
			modify: func(in *Input) {
				in.Loads = append(in.Loads, Load{From: "B", To: "C", Magnitude: 1})
			},
			target: ErrInvalidLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := simpleInput()
			tt.modify(in)
			_, err := in.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), err.Error())
		})
	}
}

func TestBuild_PointLoadAtEnds(t *testing.T) {
	in := simpleInput()
	in.Loads = []Load{
		{From: "A", To: "B", Type: Point, Magnitude: 5, Distance: 0},
		{From: "C", To: "B", Type: Point, Magnitude: 5, Distance: 4},
	}
	m, err := in.Build()
	require.NoError(t, err)

	l, _ := m.Load(KeyOf("B", "C"))
	assert.Equal(t, 0.0, l.Distance)
}

func TestInput_Factored(t *testing.T) {
	in, err := LoadFromFile("testdata/two-span.json")
	require.NoError(t, err)

	factors := map[string]float64{"D": 1.2, "L": 1.6}
	out, err := in.Factored(func(c string) (float64, bool) {
		f, ok := factors[c]
		return f, ok
	})
	require.NoError(t, err)

	assert.InDelta(t, 12.0, out.Loads[0].Magnitude, 1e-12)
	assert.InDelta(t, 32.0, out.Loads[1].Magnitude, 1e-12)
	// the original is untouched
	assert.Equal(t, 10.0, in.Loads[0].Magnitude)

	_, err = in.Factored(func(string) (float64, bool) { return 0, false })
	assert.True(t, errors.Is(err, ErrInvalidLoad))
}

func TestParseSupport(t *testing.T) {
	for in, want := range map[string]Support{
		"Fixed":     Fixed,
		"pin":       Pin,
		"Roller":    Roller,
		"NoSupport": Free,
	} {
		got, err := ParseSupport(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseSupport("spring")
	assert.Error(t, err)

	assert.True(t, Pin.Rotates())
	assert.True(t, Roller.Rotates())
	assert.False(t, Fixed.Rotates())
	assert.False(t, Free.Rotates())
}
