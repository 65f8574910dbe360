// Package report writes analysis results as xlsx workbooks and PDF reports.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/mdm"
)

// Worksheets added on top of the beam definition sheets
const (
	SheetSummary      = "Summary"
	SheetFactors      = "Factors"
	SheetDistribution = "Distribution"
	SheetResults      = "Results"
	SheetDiagrams     = "Diagrams"
)

// Save writes r to path as an xlsx workbook or a PDF report, by extension
func Save(r *mdm.Result, path string, decimals int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := Workbook(r, decimals)
		if err != nil {
			return err
		}
		defer f.Close()
		return f.SaveAs(path)
	case ".pdf":
		pdf, err := PDF(r, decimals)
		if err != nil {
			return err
		}
		return pdf.OutputFileAndClose(path)
	}
	return fmt.Errorf("unsupported report format %q (want .xlsx or .pdf)", filepath.Ext(path))
}

// WriteWorkbook writes the xlsx workbook to w
func WriteWorkbook(w io.Writer, r *mdm.Result, decimals int) error {
	f, err := Workbook(r, decimals)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// sheetWriter appends rows to one worksheet
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	header int
	number int
}

func (s *sheetWriter) write(values ...any) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(s.sheet, cell, &values); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), s.row)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(s.sheet, cell, last, s.number)
}

func (s *sheetWriter) title(values ...any) error {
	if err := s.write(values...); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, _ := excelize.CoordinatesToCellName(max(len(values), 1), s.row)
	return s.f.SetCellStyle(s.sheet, first, last, s.header)
}

func (s *sheetWriter) skip() {
	s.row++
}

// Workbook builds the full workbook: summary, beam definition, factors,
// distribution table, results and diagram samples with charts.
// The Joints, Spans and Loads sheets can be read back as beam input.
func Workbook(r *mdm.Result, decimals int) (*excelize.File, error) {
	f := excelize.NewFile()
	fail := func(err error) (*excelize.File, error) {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fail(err)
	}
	if err := beam.WriteSheets(f, r.Model.Input()); err != nil {
		return fail(err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fail(err)
	}
	numFmt := "0"
	if decimals > 0 {
		numFmt += "." + strings.Repeat("0", decimals)
	}
	number, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fail(err)
	}

	sheet := func(name string) (*sheetWriter, error) {
		if name != SheetSummary {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}
		if err := f.SetColWidth(name, "A", "Z", 12); err != nil {
			return nil, err
		}
		return &sheetWriter{f: f, sheet: name, header: header, number: number}, nil
	}

	for _, build := range []struct {
		name string
		fn   func(*sheetWriter, *mdm.Result) error
	}{
		{SheetSummary, writeSummary},
		{SheetFactors, writeFactors},
		{SheetDistribution, writeDistribution},
		{SheetResults, writeResults},
		{SheetDiagrams, writeDiagrams},
	} {
		s, err := sheet(build.name)
		if err != nil {
			return fail(err)
		}
		if err := build.fn(s, r); err != nil {
			return fail(fmt.Errorf("sheet %s: %w", build.name, err))
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummary(s *sheetWriter, r *mdm.Result) error {
	name := r.Model.Name
	if name == "" {
		name = "Continuous beam"
	}
	rows := [][]any{
		{"Beam", name},
		{"Joints", strings.Join(r.Model.Chain, " - ")},
		{"Total length", r.Model.TotalLength()},
		{"Stiffness rule", r.Options.Stiffness.String()},
		{"Tolerance", r.Options.Tolerance},
		{"Max iterations", r.Options.MaxIterations},
		{"Iterations", len(r.Iterations)},
		{"Converged", r.Converged},
		{"Largest final balance", r.MaxBalance()},
	}
	if err := s.title("Moment distribution analysis"); err != nil {
		return err
	}
	for _, row := range rows {
		if err := s.write(row...); err != nil {
			return err
		}
	}
	return nil
}

func writeFactors(s *sheetWriter, r *mdm.Result) error {
	if err := s.title("Span", "Coefficient", "I", "L", "k"); err != nil {
		return err
	}
	for _, sf := range r.Stiffness {
		if err := s.write(sf.Span.String(), sf.Coefficient, sf.Inertia, sf.Length, sf.Value); err != nil {
			return err
		}
	}

	s.skip()
	if err := s.title("Member", "DF"); err != nil {
		return err
	}
	for _, d := range r.Distribution {
		if err := s.write(d.End.String(), d.Value); err != nil {
			return err
		}
	}

	s.skip()
	if err := s.title("Span", "From", "To", "FEM from", "FEM to"); err != nil {
		return err
	}
	for _, fem := range r.FixedEnd {
		if err := s.write(fem.Span.String(), fem.From, fem.To, fem.FromTo, fem.ToFrom); err != nil {
			return err
		}
	}
	return nil
}

func writeDistribution(s *sheetWriter, r *mdm.Result) error {
	joints := []any{"Joint"}
	ends := []any{"Member"}
	for _, e := range r.Total.Ends() {
		joints = append(joints, e.From)
		ends = append(ends, e.String())
	}
	if err := s.title(joints...); err != nil {
		return err
	}
	if err := s.title(ends...); err != nil {
		return err
	}
	for _, row := range r.Table() {
		values := []any{row.Label}
		for _, v := range row.Values {
			values = append(values, v)
		}
		if err := s.write(values...); err != nil {
			return err
		}
	}
	return nil
}

func writeResults(s *sheetWriter, r *mdm.Result) error {
	if err := s.title("Member", "Total moment"); err != nil {
		return err
	}
	for _, e := range r.Total.Ends() {
		if err := s.write(e.String(), r.Total.Get(e)); err != nil {
			return err
		}
	}

	s.skip()
	if err := s.title("Span", "From", "To", "Shear at from", "Shear at to"); err != nil {
		return err
	}
	for _, es := range r.EndShears {
		if err := s.write(es.Span.String(), es.From, es.To, es.AtFrom, es.AtTo); err != nil {
			return err
		}
	}

	s.skip()
	if err := s.title("Joint", "Support", "x", "Reaction"); err != nil {
		return err
	}
	for _, rc := range r.Reactions {
		j, _ := r.Model.Joint(rc.Joint)
		if err := s.write(rc.Joint, j.Support.String(), rc.Position, rc.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeDiagrams lists the moment samples in columns A:C and the shear
// samples in E:G, with a scatter chart for each
func writeDiagrams(s *sheetWriter, r *mdm.Result) error {
	if err := s.title("x", "M", "Span", "", "x", "V", "Span"); err != nil {
		return err
	}
	bm := mdm.Collect(r.BendingMoment())
	sf := mdm.Collect(r.ShearForce())

	for i := range max(len(bm), len(sf)) {
		row := make([]any, 7)
		for c := range row {
			row[c] = ""
		}
		if i < len(bm) {
			row[0], row[1], row[2] = bm[i].X, bm[i].Value, bm[i].Span.String()
		}
		if i < len(sf) {
			row[4], row[5], row[6] = sf[i].X, sf[i].Value, sf[i].Span.String()
		}
		if err := s.write(row...); err != nil {
			return err
		}
	}

	charts := []struct {
		cell   string
		title  string
		x, y   string
		points int
	}{
		{"I2", "Bending Moment Diagram", "A", "B", len(bm)},
		{"I20", "Shear Force Diagram", "E", "F", len(sf)},
	}
	for _, c := range charts {
		if c.points == 0 {
			continue
		}
		err := s.f.AddChart(s.sheet, c.cell, &excelize.Chart{
			Type: excelize.Scatter,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$%s$1", s.sheet, c.y),
				Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", s.sheet, c.x, c.x, c.points+1),
				Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", s.sheet, c.y, c.y, c.points+1),
				Marker:     excelize.ChartMarker{Symbol: "none"},
			}},
			Title:     []excelize.RichTextRun{{Text: c.title}},
			Legend:    excelize.ChartLegend{Position: "none"},
			Dimension: excelize.ChartDimension{Width: 640, Height: 320},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
