package section

import (
	"errors"
	"math"
)

// Validate checks that every parameter the shape needs is present and positive
func (s Section) Validate() error {
	switch s.Shape {
	case Rectangular:
		var errs []error
		if !(s.Width > 0) || math.IsInf(s.Width, 0) {
			errs = append(errs, &InvalidGeometryError{Field: "width", Value: s.Width})
		}
		if !(s.Height > 0) || math.IsInf(s.Height, 0) {
			errs = append(errs, &InvalidGeometryError{Field: "height", Value: s.Height})
		}
		return errors.Join(errs...)
	case Circular:
		if !(s.Diameter > 0) || math.IsInf(s.Diameter, 0) {
			return &InvalidGeometryError{Field: "diameter", Value: s.Diameter}
		}
		return nil
	case Polygon:
		if len(s.Vertices) < 3 {
			return &InvalidGeometryError{Field: "vertices", Reason: "must contain at least 3 points"}
		}
		if area, _, _ := s.areaAndCentroid(); area <= 0 {
			return &InvalidGeometryError{Field: "vertices", Reason: "must enclose a positive area"}
		}
		return nil
	case 0:
		return &InvalidGeometryError{Field: "shape", Reason: "is required"}
	}
	return &InvalidGeometryError{Field: "shape", Reason: "is not a known section shape"}
}

// MomentOfInertia returns the second moment of area I about the horizontal
// centroidal axis: b·h³/12 for rectangles, π·d⁴/64 for circles.
func (s Section) MomentOfInertia() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	switch s.Shape {
	case Rectangular:
		return s.Width * math.Pow(s.Height, 3) / 12, nil
	case Circular:
		return math.Pi * math.Pow(s.Diameter, 4) / 64, nil
	default:
		return s.polygonInertia(), nil
	}
}

// CalculateProperties computes geometric properties of the section
func (s Section) CalculateProperties() (*Properties, error) {
	inertia, err := s.MomentOfInertia()
	if err != nil {
		return nil, err
	}

	props := &Properties{Inertia: inertia}
	switch s.Shape {
	case Rectangular:
		props.Width, props.Height = s.Width, s.Height
		props.Area = s.Width * s.Height
		props.CentroidX, props.CentroidY = s.Width/2, s.Height/2
	case Circular:
		props.Width, props.Height = s.Diameter, s.Diameter
		props.Area = math.Pi * s.Diameter * s.Diameter / 4
		props.CentroidX, props.CentroidY = s.Diameter/2, s.Diameter/2
	default:
		minX, maxX := s.Vertices[0].X, s.Vertices[0].X
		minY, maxY := s.Vertices[0].Y, s.Vertices[0].Y
		for _, v := range s.Vertices {
			minX = math.Min(minX, v.X)
			maxX = math.Max(maxX, v.X)
			minY = math.Min(minY, v.Y)
			maxY = math.Max(maxY, v.Y)
		}
		props.Width = maxX - minX
		props.Height = maxY - minY
		props.Area, props.CentroidX, props.CentroidY = s.areaAndCentroid()
	}
	return props, nil
}

// areaAndCentroid uses the shoelace formula
func (s Section) areaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		signedArea += cross
		sumX += (s.Vertices[i].X + s.Vertices[j].X) * cross
		sumY += (s.Vertices[i].Y + s.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// polygonInertia integrates y² over the polygon about the x-axis and shifts
// the result to the centroid (parallel axis theorem)
func (s Section) polygonInertia() float64 {
	n := len(s.Vertices)

	var signedArea, ix float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := s.Vertices[i], s.Vertices[j]
		cross := vi.X*vj.Y - vj.X*vi.Y
		signedArea += cross
		ix += cross * (vi.Y*vi.Y + vi.Y*vj.Y + vj.Y*vj.Y)
	}
	ix /= 12
	if signedArea < 0 {
		// clockwise winding
		ix = -ix
	}

	area, _, cy := s.areaAndCentroid()
	return ix - area*cy*cy
}
