package diagram

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/mdm"
)

// schematicWidth is the number of characters the whole beam is drawn across
const schematicWidth = 60

// FormatValue rounds v for display. Values that round to zero are printed
// without a sign.
func FormatValue(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

// supportSymbol returns the ASCII glyph drawn under a joint
func supportSymbol(s beam.Support) string {
	switch s {
	case beam.Fixed:
		return "▓"
	case beam.Pin:
		return "▲"
	case beam.Roller:
		return "◯"
	}
	return " "
}

// DrawBeamSchematic draws the chain to scale with joint labels, supports and
// span loads
func DrawBeamSchematic(m *beam.Model, decimals int) string {
	total := m.TotalLength()
	widths := make([]int, 0, len(m.Chain)-1)
	for i := 0; i < len(m.Chain)-1; i++ {
		s, _ := m.Span(beam.KeyOf(m.Chain[i], m.Chain[i+1]))
		w := int(math.Round(s.Length / total * schematicWidth))
		widths = append(widths, max(w, 10))
	}

	var loads, beamLine, supports, lengths strings.Builder
	loads.WriteString("  ")
	beamLine.WriteString("  ")
	supports.WriteString("  ")
	lengths.WriteString("  ")

	for i, label := range m.Chain {
		jt, _ := m.Joint(label)
		cell := max(len([]rune(label)), 1)
		beamLine.WriteString(label)
		supports.WriteString(pad(supportSymbol(jt.Support), cell))
		loads.WriteString(strings.Repeat(" ", cell))
		lengths.WriteString(strings.Repeat(" ", cell))

		if i == len(m.Chain)-1 {
			break
		}
		w := widths[i]
		s, _ := m.Span(beam.KeyOf(label, m.Chain[i+1]))
		beamLine.WriteString(strings.Repeat("═", w))
		supports.WriteString(strings.Repeat(" ", w))
		lengths.WriteString(center(fmt.Sprintf("L=%s", FormatValue(s.Length, decimals)), w))

		l, ok := m.Load(s.Key())
		switch {
		case !ok:
			loads.WriteString(strings.Repeat(" ", w))
		case l.Type == beam.UniformDistributed:
			loads.WriteString(center(fmt.Sprintf("↓ w=%s ↓", FormatValue(l.Magnitude, decimals)), w))
		default:
			loads.WriteString(center(fmt.Sprintf("↓ P=%s @%s", FormatValue(l.Magnitude, decimals), FormatValue(l.Distance, decimals)), w))
		}
	}

	var sb strings.Builder
	for _, line := range []string{loads.String(), beamLine.String(), supports.String(), lengths.String()} {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n  ▓ fixed   ▲ pin   ◯ roller\n")
	return sb.String()
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// WriteDistributionTable writes the moment distribution table: one column per
// member-end, one row per step of the relaxation
func WriteDistributionTable(out io.Writer, r *mdm.Result, decimals int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"Joint"}
	ends := []string{"Member"}
	for _, e := range r.Total.Ends() {
		header = append(header, e.From)
		ends = append(ends, e.String())
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(w, strings.Join(ends, "\t")+"\t")

	for _, row := range r.Table() {
		cells := []string{row.Label}
		d := decimals
		if row.Label == "DF" {
			d = max(decimals, 3)
		}
		for _, v := range row.Values {
			cells = append(cells, FormatValue(v, d))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	return w.Flush()
}

// WriteReactionTable writes the reaction at every joint
func WriteReactionTable(out io.Writer, r *mdm.Result, decimals int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Joint\tSupport\tx\tReaction")
	fmt.Fprintln(w, "─────\t───────\t─\t────────")
	for _, rc := range r.Reactions {
		jt, _ := r.Model.Joint(rc.Joint)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rc.Joint, jt.Support, FormatValue(rc.Position, decimals), FormatValue(rc.Value, decimals))
	}
	return w.Flush()
}

// PlotOptions sizes the ASCII plots
type PlotOptions struct {
	Width     int
	Height    int
	Precision uint
}

// DefaultPlotOptions fits an 80-column terminal
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 60, Height: 12, Precision: 2}
}

// PlotBendingMoment renders the bending-moment samples as an ASCII chart
func PlotBendingMoment(r *mdm.Result, opts PlotOptions) string {
	return plotSamples(mdm.Collect(r.BendingMoment()), "Bending moment diagram", r.Model, opts)
}

// PlotShearForce renders the shear-force samples as an ASCII chart
func PlotShearForce(r *mdm.Result, opts PlotOptions) string {
	return plotSamples(mdm.Collect(r.ShearForce()), "Shear force diagram", r.Model, opts)
}

func plotSamples(samples []mdm.Sample, title string, m *beam.Model, opts PlotOptions) string {
	if len(samples) == 0 {
		return ""
	}
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Value
	}
	caption := fmt.Sprintf("%s, x = 0 to %g along %s", title, m.TotalLength(), strings.Join(m.Chain, "-"))
	return asciigraph.Plot(data,
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Precision(opts.Precision),
		asciigraph.Caption(caption),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// SummaryLines lists the governing values of an analysis for DrawSummaryBox
func SummaryLines(r *mdm.Result, decimals int) []string {
	f := func(v float64) string { return FormatValue(v, decimals) }

	lines := []string{
		fmt.Sprintf("Iterations:   %d of %d", len(r.Iterations), r.Options.MaxIterations),
		fmt.Sprintf("Converged:    %t (tolerance %g)", r.Converged, r.Options.Tolerance),
	}
	if lo, hi, ok := mdm.Extremes(r.BendingMoment()); ok {
		lines = append(lines,
			fmt.Sprintf("Max moment:   %s at x = %s", f(hi.Value), f(hi.X)),
			fmt.Sprintf("Min moment:   %s at x = %s", f(lo.Value), f(lo.X)),
		)
	}
	if lo, hi, ok := mdm.Extremes(r.ShearForce()); ok {
		v := hi
		if math.Abs(lo.Value) > math.Abs(hi.Value) {
			v = lo
		}
		lines = append(lines, fmt.Sprintf("Max shear:    %s at x = %s", f(v.Value), f(v.X)))
	}
	return lines
}
