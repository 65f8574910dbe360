package mdm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/section"
)

func rect(b, h float64) section.Section {
	return section.Section{Shape: section.Rectangular, Width: b, Height: h}
}

func j(label string, support beam.Support, neighbors ...string) beam.Joint {
	return beam.Joint{Label: label, Neighbors: neighbors, Support: support}
}

// proppedCantilever is fixed at A, pinned at B, L = 6, w = 10
func proppedCantilever(t *testing.T) *beam.Model {
	t.Helper()
	in := &beam.Input{
		Joints: []beam.Joint{j("A", beam.Fixed, "B"), j("B", beam.Pin, "A")},
		Spans:  []beam.Span{{From: "A", To: "B", Length: 6, Section: rect(0.3, 0.5)}},
		Loads:  []beam.Load{{From: "A", To: "B", Type: beam.UniformDistributed, Magnitude: 10}},
	}
	m, err := in.Build()
	require.NoError(t, err)
	return m
}

// symmetric is Fixed-Pin-Fixed with two equal spans under equal UDLs
func symmetric(t *testing.T) *beam.Model {
	t.Helper()
	in := &beam.Input{
		Joints: []beam.Joint{
			j("A", beam.Fixed, "B"),
			j("B", beam.Pin, "A", "C"),
			j("C", beam.Fixed, "B"),
		},
		Spans: []beam.Span{
			{From: "A", To: "B", Length: 5, Section: rect(0.3, 0.5)},
			{From: "B", To: "C", Length: 5, Section: rect(0.3, 0.5)},
		},
		Loads: []beam.Load{
			{From: "A", To: "B", Type: beam.UniformDistributed, Magnitude: 12},
			{From: "B", To: "C", Type: beam.UniformDistributed, Magnitude: 12},
		},
	}
	m, err := in.Build()
	require.NoError(t, err)
	return m
}

// simplySupported is pinned at A, roller at B, L = 4, P = 10 at 1 from A
func simplySupported(t *testing.T) *beam.Model {
	t.Helper()
	in := &beam.Input{
		Joints: []beam.Joint{j("A", beam.Pin, "B"), j("B", beam.Roller, "A")},
		Spans:  []beam.Span{{From: "A", To: "B", Length: 4, Section: rect(0.3, 0.5)}},
		Loads:  []beam.Load{{From: "A", To: "B", Type: beam.Point, Magnitude: 10, Distance: 1}},
	}
	m, err := in.Build()
	require.NoError(t, err)
	return m
}

// overhang is fixed at A, roller at B and free at the tip C, with
// w = 10 on A-B (L = 6) and w = 10 on the overhang B-C (L = 2)
func overhang(t *testing.T) *beam.Model {
	t.Helper()
	in := &beam.Input{
		Joints: []beam.Joint{
			j("A", beam.Fixed, "B"),
			j("B", beam.Roller, "A", "C"),
			j("C", beam.Free, "B"),
		},
		Spans: []beam.Span{
			{From: "A", To: "B", Length: 6, Section: rect(0.3, 0.5)},
			{From: "B", To: "C", Length: 2, Section: rect(0.3, 0.5)},
		},
		Loads: []beam.Load{
			{From: "A", To: "B", Type: beam.UniformDistributed, Magnitude: 10},
			{From: "B", To: "C", Type: beam.UniformDistributed, Magnitude: 10},
		},
	}
	m, err := in.Build()
	require.NoError(t, err)
	return m
}

func fromFile(t *testing.T, path string) *beam.Model {
	t.Helper()
	in, err := beam.LoadFromFile(path)
	require.NoError(t, err)
	m, err := in.Build()
	require.NoError(t, err)
	return m
}

func tight() Options {
	opts := DefaultOptions()
	opts.Tolerance = 1e-12
	opts.MaxIterations = 200
	return opts
}
