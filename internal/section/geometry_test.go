package section

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentOfInertia(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		want    float64
	}{
		{
			name:    "rectangle",
			section: Section{Shape: Rectangular, Width: 0.3, Height: 0.5},
			want:    0.3 * 0.125 / 12,
		},
		{
			name:    "circle",
			section: Section{Shape: Circular, Diameter: 0.4},
			want:    math.Pi * 0.0256 / 64,
		},
		{
			name: "square polygon matches rectangle",
			section: Section{Shape: Polygon, Vertices: []Point{
				{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 600}, {X: 0, Y: 600},
			}},
			want: 200 * math.Pow(600, 3) / 12,
		},
		{
			name: "clockwise polygon",
			section: Section{Shape: Polygon, Vertices: []Point{
				{X: 0, Y: 0}, {X: 0, Y: 600}, {X: 200, Y: 600}, {X: 200, Y: 0},
			}},
			want: 200 * math.Pow(600, 3) / 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.section.MomentOfInertia()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.want*1e-12)
		})
	}
}

func TestMomentOfInertia_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		field   string
	}{
		{"no shape", Section{Width: 0.3, Height: 0.5}, "shape"},
		{"unknown shape", Section{Shape: Polygon + 1, Width: 0.3, Height: 0.5}, "shape"},
		{"missing height", Section{Shape: Rectangular, Width: 0.3}, "height"},
		{"negative width", Section{Shape: Rectangular, Width: -0.3, Height: 0.5}, "width"},
		{"zero diameter", Section{Shape: Circular}, "diameter"},
		{"two vertices", Section{Shape: Polygon, Vertices: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}, "vertices"},
		{"collinear vertices", Section{Shape: Polygon, Vertices: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}, "vertices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.section.MomentOfInertia()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGeometry))

			var ge *InvalidGeometryError
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, tt.field, ge.Field)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("json polygon", func(t *testing.T) {
		s, err := LoadFromFile("testdata/t-beam.json")
		require.NoError(t, err)
		assert.Equal(t, Polygon, s.Shape)

		props, err := s.CalculateProperties()
		require.NoError(t, err)

		// web 300x400 plus flange 900x100 on top
		webA, webY := 300.0*400, 200.0
		flA, flY := 900.0*100, 450.0
		area := webA + flA
		cy := (webA*webY + flA*flY) / area
		want := 300*math.Pow(400, 3)/12 + webA*math.Pow(cy-webY, 2) +
			900*math.Pow(100, 3)/12 + flA*math.Pow(flY-cy, 2)

		assert.InDelta(t, area, props.Area, 1e-6)
		assert.InDelta(t, cy, props.CentroidY, 1e-9)
		assert.InDelta(t, 900.0, props.Width, 1e-12)
		assert.InDelta(t, want, props.Inertia, want*1e-12)
	})

	t.Run("yaml circle", func(t *testing.T) {
		s, err := LoadFromFile("testdata/circle.yaml")
		require.NoError(t, err)
		assert.Equal(t, Circular, s.Shape)
		assert.Equal(t, 0.4, s.Diameter)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile("testdata/nope.json")
		assert.Error(t, err)
	})
}

func TestParseShape(t *testing.T) {
	for in, want := range map[string]Shape{
		"Rectangular": Rectangular,
		"circle":      Circular,
		"POLYGON":     Polygon,
	} {
		got, err := ParseShape(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"hexagon", "", "  "} {
		_, err := ParseShape(in)
		assert.Error(t, err, in)
	}
}

func TestShape_ZeroValueIsNotASection(t *testing.T) {
	var s Shape
	assert.Equal(t, "shape(0)", s.String())
	assert.NotEqual(t, Rectangular, s)

	err := Section{Width: 0.3, Height: 0.5}.Validate()
	assert.EqualError(t, err, "invalid geometry: shape is required")
}
