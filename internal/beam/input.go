package beam

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input is the structured beam definition handed over by a form or file
type Input struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Joints []Joint `json:"joints" yaml:"joints"`
	Spans  []Span  `json:"spans" yaml:"spans"`
	Loads  []Load  `json:"loads,omitempty" yaml:"loads,omitempty"`

	// Solver overrides the convergence defaults when non-zero
	Solver SolverSettings `json:"solver,omitempty" yaml:"solver,omitempty"`
}

// SolverSettings carries optional convergence parameters from the input file
type SolverSettings struct {
	MaxIterations int     `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// LoadFromFile loads a beam definition from a JSON, YAML or xlsx file.
// The format is chosen by extension; anything other than .yaml/.yml/.xlsx is
// JSON.
func LoadFromFile(path string) (*Input, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		in, err := loadWorkbook(path)
		if err != nil {
			return nil, fmt.Errorf("reading beam workbook %s: %w", path, err)
		}
		return in, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var in Input
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &in)
	default:
		err = json.Unmarshal(data, &in)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing beam file %s: %w", path, err)
	}
	return &in, nil
}

// Factored returns a copy of the input whose load magnitudes are multiplied
// by factor(case). Loads without a case tag are taken as already factored.
func (in *Input) Factored(factor func(loadCase string) (float64, bool)) (*Input, error) {
	out := *in
	out.Loads = make([]Load, len(in.Loads))
	for i, l := range in.Loads {
		if l.Case != "" {
			f, ok := factor(l.Case)
			if !ok {
				return nil, &InvalidLoadError{Span: l.From + "-" + l.To, Reason: fmt.Sprintf("unknown load case %q", l.Case)}
			}
			l.Magnitude *= f
		}
		out.Loads[i] = l
	}
	return &out, nil
}
