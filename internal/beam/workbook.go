package beam

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gomdm/internal/section"
)

// Worksheets holding a beam definition
const (
	SheetJoints = "Joints"
	SheetSpans  = "Spans"
	SheetLoads  = "Loads"
)

var (
	jointHeader = []any{"Label", "Neighbors", "Support"}
	spanHeader  = []any{"From", "To", "Length", "Shape", "Width", "Height", "Diameter", "Vertices"}
	loadHeader  = []any{"From", "To", "Type", "Magnitude", "Distance", "Case"}
)

// WriteSheets adds the Joints, Spans and Loads worksheets describing in to f.
// The workbook can be read back with LoadFromFile.
func WriteSheets(f *excelize.File, in *Input) error {
	joints := [][]any{jointHeader}
	for _, j := range in.Joints {
		joints = append(joints, []any{j.Label, strings.Join(j.Neighbors, ", "), j.Support.String()})
	}

	spans := [][]any{spanHeader}
	for _, s := range in.Spans {
		row := []any{s.From, s.To, s.Length, s.Section.Shape.String()}
		switch s.Section.Shape {
		case section.Rectangular:
			row = append(row, s.Section.Width, s.Section.Height, "", "")
		case section.Circular:
			row = append(row, "", "", s.Section.Diameter, "")
		default:
			row = append(row, "", "", "", formatVertices(s.Section.Vertices))
		}
		spans = append(spans, row)
	}

	loads := [][]any{loadHeader}
	for _, l := range in.Loads {
		loads = append(loads, []any{l.From, l.To, l.Type.String(), l.Magnitude, l.Distance, l.Case})
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{
		{SheetJoints, joints},
		{SheetSpans, spans},
		{SheetLoads, loads},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}
		for i, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadWorkbook reads a beam definition from the Joints, Spans and optional
// Loads worksheets of an xlsx file
func loadWorkbook(path string) (*Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	in := &Input{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	sheets := f.GetSheetList()
	for _, required := range []string{SheetJoints, SheetSpans} {
		if !slices.Contains(sheets, required) {
			return nil, fmt.Errorf("workbook %s has no %s sheet", path, required)
		}
	}

	rows, err := f.GetRows(SheetJoints, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for i, row := range dataRows(rows) {
		c := cells(row, len(jointHeader))
		support, err := ParseSupport(c[2])
		if err != nil {
			return nil, sheetError(SheetJoints, i, err)
		}
		in.Joints = append(in.Joints, Joint{
			Label:     strings.TrimSpace(c[0]),
			Neighbors: splitList(c[1]),
			Support:   support,
		})
	}

	rows, err = f.GetRows(SheetSpans, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for i, row := range dataRows(rows) {
		c := cells(row, len(spanHeader))
		s := Span{From: strings.TrimSpace(c[0]), To: strings.TrimSpace(c[1])}
		if s.Section.Shape, err = section.ParseShape(c[3]); err != nil {
			return nil, sheetError(SheetSpans, i, err)
		}
		nums, err := parseFloats(c[2], c[4], c[5], c[6])
		if err != nil {
			return nil, sheetError(SheetSpans, i, err)
		}
		s.Length, s.Section.Width, s.Section.Height, s.Section.Diameter = nums[0], nums[1], nums[2], nums[3]
		if s.Section.Vertices, err = parseVertices(c[7]); err != nil {
			return nil, sheetError(SheetSpans, i, err)
		}
		in.Spans = append(in.Spans, s)
	}

	if !slices.Contains(sheets, SheetLoads) {
		return in, nil
	}
	rows, err = f.GetRows(SheetLoads, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for i, row := range dataRows(rows) {
		c := cells(row, len(loadHeader))
		lt, err := ParseLoadType(c[2])
		if err != nil {
			return nil, sheetError(SheetLoads, i, err)
		}
		nums, err := parseFloats(c[3], c[4])
		if err != nil {
			return nil, sheetError(SheetLoads, i, err)
		}
		in.Loads = append(in.Loads, Load{
			From:      strings.TrimSpace(c[0]),
			To:        strings.TrimSpace(c[1]),
			Type:      lt,
			Magnitude: nums[0],
			Distance:  nums[1],
			Case:      strings.TrimSpace(c[5]),
		})
	}
	return in, nil
}

// dataRows drops the header row and blank rows
func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if strings.TrimSpace(strings.Join(r, "")) != "" {
			out = append(out, r)
		}
	}
	return out
}

// cells pads a row to n columns; GetRows trims trailing empty cells
func cells(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	return append(row, make([]string, n-len(row))...)
}

func sheetError(sheet string, i int, err error) error {
	// +2: one-based and the header row
	return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseFloats converts cells to numbers; an empty cell is 0
func parseFloats(values ...string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", v)
		}
		out[i] = f
	}
	return out, nil
}

// formatVertices writes "x y; x y; ..."
func formatVertices(pts []section.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = strconv.FormatFloat(p.X, 'g', -1, 64) + " " + strconv.FormatFloat(p.Y, 'g', -1, 64)
	}
	return strings.Join(parts, "; ")
}

func parseVertices(s string) ([]section.Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pts []section.Point
	for _, part := range strings.Split(s, ";") {
		xy := strings.Fields(part)
		if len(xy) != 2 {
			return nil, fmt.Errorf("vertex %q must be \"x y\"", strings.TrimSpace(part))
		}
		nums, err := parseFloats(xy[0], xy[1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, section.Point{X: nums[0], Y: nums[1]})
	}
	return pts, nil
}
