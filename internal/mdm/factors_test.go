package mdm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

func TestStiffnessFactors(t *testing.T) {
	m := fromFile(t, "../beam/testdata/two-span.json")

	sf := StiffnessFactors(m, StandardStiffness)
	require.Len(t, sf, 2)
	assert.Equal(t, 4.0, sf[0].Coefficient) // A is fixed
	assert.Equal(t, 3.0, sf[1].Coefficient)
	assert.InDelta(t, 4*m.Spans[0].Inertia/6, sf[0].Value, 1e-15)
	assert.InDelta(t, 3*m.Spans[1].Inertia/4, sf[1].Value, 1e-15)

	uniform := StiffnessFactors(m, UniformStiffness)
	assert.Equal(t, 4.0, uniform[1].Coefficient)
}

func TestParseStiffnessRule(t *testing.T) {
	r, err := ParseStiffnessRule("")
	require.NoError(t, err)
	assert.Equal(t, StandardStiffness, r)

	r, err = ParseStiffnessRule(" Uniform ")
	require.NoError(t, err)
	assert.Equal(t, UniformStiffness, r)

	_, err = ParseStiffnessRule("5I/L")
	assert.Error(t, err)
}

func TestDistributionFactors_SumToOne(t *testing.T) {
	for _, path := range []string{"../beam/testdata/two-span.json", "../beam/testdata/three-span.yaml"} {
		t.Run(path, func(t *testing.T) {
			m := fromFile(t, path)
			dfs := DistributionFactors(m, StiffnessFactors(m, StandardStiffness))

			sums := map[string]float64{}
			for _, d := range dfs {
				assert.GreaterOrEqual(t, d.Value, 0.0)
				assert.LessOrEqual(t, d.Value, 1.0)
				sums[d.End.From] += d.Value
			}
			for _, jt := range m.Joints {
				if jt.Support.Rotates() {
					assert.InDelta(t, 1.0, sums[jt.Label], 1e-9, "joint %s", jt.Label)
				} else {
					assert.Equal(t, 0.0, sums[jt.Label], "joint %s", jt.Label)
				}
			}
		})
	}
}

func TestDistributionFactors_SimpleEndIsExactlyOne(t *testing.T) {
	m := proppedCantilever(t)
	dfs := DistributionFactors(m, StiffnessFactors(m, StandardStiffness))

	require.Len(t, dfs, 2)
	assert.Equal(t, MemberEnd{From: "A", To: "B"}, dfs[0].End)
	assert.Equal(t, 0.0, dfs[0].Value)
	assert.Equal(t, MemberEnd{From: "B", To: "A"}, dfs[1].End)
	assert.Equal(t, 1.0, dfs[1].Value)
}

func TestDistributionFactors_ZeroStiffness(t *testing.T) {
	m := symmetric(t)
	dfs := DistributionFactors(m, nil)
	for _, d := range dfs {
		assert.False(t, math.IsNaN(d.Value))
		assert.Equal(t, 0.0, d.Value)
	}
}

func TestFixedEnd(t *testing.T) {
	tests := []struct {
		name   string
		load   beam.Load
		length float64
		ft, tf float64
	}{
		{"udl", beam.Load{Type: beam.UniformDistributed, Magnitude: 12}, 5, -25, 25},
		{"centered point", beam.Load{Type: beam.Point, Magnitude: 16, Distance: 2}, 4, -8, 8},
		{"offset point", beam.Load{Type: beam.Point, Magnitude: 10, Distance: 1}, 4, -5.625, 1.875},
		{"point at end", beam.Load{Type: beam.Point, Magnitude: 10, Distance: 0}, 4, 0, 0},
		{"no load", beam.Load{}, 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft, tf := FixedEnd(tt.load, tt.length)
			assert.InDelta(t, tt.ft, ft, 1e-12)
			assert.InDelta(t, tt.tf, tf, 1e-12)
		})
	}
}

func TestFixedEndMoments_SkipsUnloadedSpans(t *testing.T) {
	in := &beam.Input{
		Joints: []beam.Joint{
			j("A", beam.Fixed, "B"),
			j("B", beam.Roller, "A", "C"),
			j("C", beam.Pin, "B"),
		},
		Spans: []beam.Span{
			{From: "A", To: "B", Length: 4, Section: rect(0.3, 0.5)},
			{From: "B", To: "C", Length: 4, Section: rect(0.3, 0.5)},
		},
		Loads: []beam.Load{{From: "C", To: "B", Type: beam.UniformDistributed, Magnitude: 6}},
	}
	m, err := in.Build()
	require.NoError(t, err)

	fems := FixedEndMoments(m)
	require.Len(t, fems, 1)
	assert.Equal(t, beam.KeyOf("B", "C"), fems[0].Span)
	assert.Equal(t, "B", fems[0].From)
	assert.InDelta(t, -8.0, fems[0].FromTo, 1e-12)
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	bad := []func(*Options){
		func(o *Options) { o.MaxIterations = 0 },
		func(o *Options) { o.Tolerance = 0 },
		func(o *Options) { o.Tolerance = math.NaN() },
		func(o *Options) { o.Samples = 0 },
		func(o *Options) { o.Stiffness = StiffnessRule(7) },
	}
	for _, mutate := range bad {
		o := DefaultOptions()
		mutate(&o)
		assert.ErrorIs(t, o.Validate(), ErrInvalidOptions)
	}
}
