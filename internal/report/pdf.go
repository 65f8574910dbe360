package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/diagram"
	"github.com/alexiusacademia/gomdm/internal/mdm"
	"github.com/alexiusacademia/gomdm/internal/version"
)

const (
	pageWidth   = 180.0 // A4 less 15 mm margins
	rowHeight   = 6.0
	diagramsImg = "diagrams"
)

// WritePDF writes the PDF report to w
func WritePDF(w io.Writer, r *mdm.Result, decimals int) error {
	pdf, err := PDF(r, decimals)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// PDF lays out an A4 calculation report: input, factors, the distribution
// table, final moments, reactions and the diagrams image
func PDF(r *mdm.Result, decimals int) (*gofpdf.Fpdf, error) {
	f := func(v float64) string { return diagram.FormatValue(v, decimals) }

	title := r.Model.Name
	if title == "" {
		title = "Continuous Beam Analysis"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, false)
	pdf.SetCreator("gomdm "+version.Version, false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Moment distribution method (Hardy Cross), %s", time.Now().Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Stiffness rule: %s   Tolerance: %g   Iteration cap: %d",
		r.Options.Stiffness, r.Options.Tolerance, r.Options.MaxIterations))
	pdf.Ln(8)

	heading(pdf, "Joints")
	var rows [][]string
	for _, j := range r.Model.Joints {
		rows = append(rows, []string{j.Label, j.Support.String(), strings.Join(j.Neighbors, ", ")})
	}
	table(pdf, []string{"Joint", "Support", "Neighbors"}, rows)

	heading(pdf, "Spans")
	rows = rows[:0]
	for _, s := range r.Model.Spans {
		rows = append(rows, []string{s.Name(), f(s.Length), s.Section.Shape.String(), fmt.Sprintf("%.4e", s.Inertia)})
	}
	table(pdf, []string{"Span", "L", "Section", "I"}, rows)

	if loads := r.Model.Loads(); len(loads) > 0 {
		heading(pdf, "Loads")
		rows = rows[:0]
		for _, l := range loads {
			dist := "-"
			if l.Type == beam.Point {
				dist = f(l.Distance)
			}
			rows = append(rows, []string{l.From + "-" + l.To, l.Type.String(), f(l.Magnitude), dist, l.Case})
		}
		table(pdf, []string{"Span", "Type", "Magnitude", "a", "Case"}, rows)
	}

	heading(pdf, "Stiffness and fixed-end moments")
	fems := make(map[string]mdm.FixedEndMoment, len(r.FixedEnd))
	for _, fem := range r.FixedEnd {
		fems[fem.Span.String()] = fem
	}
	rows = rows[:0]
	for _, sf := range r.Stiffness {
		fem := fems[sf.Span.String()]
		rows = append(rows, []string{
			sf.From + "-" + sf.To,
			fmt.Sprintf("%gI/L", sf.Coefficient),
			fmt.Sprintf("%.4e", sf.Value),
			f(fem.FromTo),
			f(fem.ToFrom),
		})
	}
	table(pdf, []string{"Span", "Rule", "k", "FEM from", "FEM to"}, rows)

	heading(pdf, "Moment distribution")
	header := []string{""}
	for _, e := range r.Total.Ends() {
		header = append(header, e.String())
	}
	rows = rows[:0]
	for _, row := range r.Table() {
		cells := []string{row.Label}
		d := decimals
		if row.Label == "DF" {
			d = max(decimals, 3)
		}
		for _, v := range row.Values {
			cells = append(cells, diagram.FormatValue(v, d))
		}
		rows = append(rows, cells)
	}
	if len(header) > 9 {
		pdf.SetFont("Helvetica", "", 7)
	}
	table(pdf, header, rows)

	heading(pdf, "Reactions")
	rows = rows[:0]
	for _, rc := range r.Reactions {
		j, _ := r.Model.Joint(rc.Joint)
		rows = append(rows, []string{rc.Joint, j.Support.String(), f(rc.Position), f(rc.Value)})
	}
	table(pdf, []string{"Joint", "Support", "x", "Reaction"}, rows)

	pdf.SetFont("Helvetica", "B", 10)
	if r.Converged {
		pdf.Cell(0, rowHeight, fmt.Sprintf("Converged after %d iterations.", len(r.Iterations)))
	} else {
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, rowHeight, r.ConvergenceErr().Error(), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(rowHeight)

	var img bytes.Buffer
	if _, err := diagram.WriteDiagrams(&img, r, "png"); err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(diagramsImg, opts, &img)
	pdf.AddPage()
	heading(pdf, "Diagrams")
	pdf.ImageOptions(diagramsImg, 20, pdf.GetY(), 170, 0, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return pdf, nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 9)
}

// table draws a bordered table with equal column widths
func table(pdf *gofpdf.Fpdf, header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}
	w := pageWidth / float64(len(header))
	fontFamily, fontSize := "Helvetica", 9.0
	if size, _ := pdf.GetFontSize(); size > 0 {
		fontSize = size
	}

	pdf.SetFont(fontFamily, "B", fontSize)
	pdf.SetFillColor(221, 235, 247)
	for _, h := range header {
		pdf.CellFormat(w, rowHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", fontSize)
	for _, row := range rows {
		for i := range header {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(w, rowHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
