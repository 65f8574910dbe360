package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/mdm"
)

var (
	beamColor   = color.Black
	loadColor   = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	momentColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	momentFill  = color.RGBA{R: 100, G: 149, B: 237, A: 120}
	shearColor  = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	shearFill   = color.RGBA{R: 144, G: 238, B: 144, A: 120}
	zeroColor   = color.Gray{Y: 128}
)

// Image size of the stacked schematic, moment and shear plots
var (
	ImageWidth  = 8 * vg.Inch
	ImageHeight = 10 * vg.Inch
)

// ExportDiagrams writes the beam schematic with the bending-moment and
// shear-force diagrams stacked below it. The format follows the extension:
// .png, .svg, .pdf or .jpg; anything else is saved as PNG.
func ExportDiagrams(r *mdm.Result, filename string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch format {
	case "png", "svg", "pdf", "jpg", "jpeg":
	default:
		format = "png"
		filename += ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := WriteDiagrams(f, r, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteDiagrams renders the stacked diagrams to w in the given format
func WriteDiagrams(w io.Writer, r *mdm.Result, format string) (int64, error) {
	schematic, err := SchematicPlot(r.Model)
	if err != nil {
		return 0, err
	}
	bmd, err := samplePlot(mdm.Collect(r.BendingMoment()), "Bending Moment Diagram", "M", momentColor, momentFill)
	if err != nil {
		return 0, err
	}
	sfd, err := samplePlot(mdm.Collect(r.ShearForce()), "Shear Force Diagram", "V", shearColor, shearFill)
	if err != nil {
		return 0, err
	}

	c, err := draw.NewFormattedCanvas(ImageWidth, ImageHeight, format)
	if err != nil {
		return 0, err
	}

	plots := [][]*plot.Plot{{schematic}, {bmd}, {sfd}}
	tiles := draw.Tiles{
		Rows:      3,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  4 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return c.WriteTo(w)
}

// SchematicPlot draws the beam axis with its supports, joint labels and loads
func SchematicPlot(m *beam.Model) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = m.Name
	if p.Title.Text == "" {
		p.Title.Text = "Beam"
	}
	p.X.Label.Text = "x"
	p.HideY()
	p.Y.Min = -1
	p.Y.Max = 1.6

	total := m.TotalLength()
	axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: total, Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Width = vg.Points(3)
	axis.LineStyle.Color = beamColor
	p.Add(axis)

	var x float64
	var labelPts []plotter.XY
	var labels []string
	for i, label := range m.Chain {
		jt, _ := m.Joint(label)
		if glyph := supportGlyph(jt.Support); glyph != nil {
			sc, err := plotter.NewScatter(plotter.XYs{{X: x, Y: -0.25}})
			if err != nil {
				return nil, err
			}
			sc.GlyphStyle.Shape = glyph
			sc.GlyphStyle.Radius = vg.Points(6)
			sc.GlyphStyle.Color = beamColor
			p.Add(sc)
		}
		labelPts = append(labelPts, plotter.XY{X: x, Y: -0.75})
		labels = append(labels, fmt.Sprintf("%s (%s)", label, jt.Support))

		if i == len(m.Chain)-1 {
			break
		}
		s, _ := m.Span(beam.KeyOf(label, m.Chain[i+1]))
		if l, ok := m.Load(s.Key()); ok {
			if err := addLoad(p, s, l, x, s.From != label); err != nil {
				return nil, err
			}
		}
		x += s.Length
	}

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)
	return p, nil
}

func supportGlyph(s beam.Support) draw.GlyphDrawer {
	switch s {
	case beam.Fixed:
		return draw.BoxGlyph{}
	case beam.Pin:
		return draw.TriangleGlyph{}
	case beam.Roller:
		return draw.RingGlyph{}
	}
	return nil
}

// addLoad draws a span load above the axis. start is the chain position of
// the span's left end.
func addLoad(p *plot.Plot, s beam.Span, l beam.Load, start float64, reversed bool) error {
	switch l.Type {
	case beam.UniformDistributed:
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: start, Y: 0.1},
			{X: start + s.Length, Y: 0.1},
			{X: start + s.Length, Y: 0.6},
			{X: start, Y: 0.6},
		})
		if err != nil {
			return err
		}
		poly.Color = color.RGBA{R: 255, G: 160, B: 160, A: 120}
		poly.LineStyle.Color = loadColor
		p.Add(poly)
		return addLabel(p, start+s.Length/2, 0.9, fmt.Sprintf("w = %g", l.Magnitude))

	case beam.Point:
		x := start + l.Distance
		if reversed {
			x = start + s.Length - l.Distance
		}
		arrow, err := plotter.NewLine(plotter.XYs{{X: x, Y: 1.0}, {X: x, Y: 0.1}})
		if err != nil {
			return err
		}
		arrow.LineStyle.Width = vg.Points(2)
		arrow.LineStyle.Color = loadColor
		p.Add(arrow)

		head, err := plotter.NewScatter(plotter.XYs{{X: x, Y: 0.15}})
		if err != nil {
			return err
		}
		head.GlyphStyle.Shape = draw.TriangleGlyph{}
		head.GlyphStyle.Color = loadColor
		head.GlyphStyle.Radius = vg.Points(3)
		p.Add(head)
		return addLabel(p, x, 1.25, fmt.Sprintf("P = %g", l.Magnitude))
	}
	return nil
}

func addLabel(p *plot.Plot, x, y float64, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// samplePlot draws a filled diagram from samples with the extremes labelled
func samplePlot(samples []mdm.Sample, title, axis string, line, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = axis
	p.Add(plotter.NewGrid())

	if len(samples) == 0 {
		return p, nil
	}

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i] = plotter.XY{X: s.X, Y: s.Value}
	}

	// close the outline on the axis so the fill starts and ends at zero
	outline := make(plotter.XYs, 0, len(pts)+2)
	outline = append(outline, plotter.XY{X: pts[0].X, Y: 0})
	outline = append(outline, pts...)
	outline = append(outline, plotter.XY{X: pts[len(pts)-1].X, Y: 0})

	area, err := plotter.NewPolygon(outline)
	if err != nil {
		return nil, err
	}
	area.Color = fill
	area.LineStyle.Width = 0
	p.Add(area)

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = line
	p.Add(l)

	zero, err := plotter.NewLine(plotter.XYs{{X: pts[0].X, Y: 0}, {X: pts[len(pts)-1].X, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Color = zeroColor
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	lo, hi := samples[0], samples[0]
	for _, s := range samples {
		if s.Value < lo.Value {
			lo = s
		}
		if s.Value > hi.Value {
			hi = s
		}
	}
	marks, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: hi.X, Y: hi.Value}, {X: lo.X, Y: lo.Value}},
		Labels: []string{fmt.Sprintf("%.2f", hi.Value), fmt.Sprintf("%.2f", lo.Value)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(marks)
	return p, nil
}
