package mdm

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// Result holds everything derived from one analysis run
type Result struct {
	Model   *beam.Model
	Options Options

	Stiffness    []StiffnessFactor
	Distribution []DistributionFactor
	FixedEnd     []FixedEndMoment

	Solution

	EndShears []EndShear
	Reactions []Reaction

	segments []segment
}

// Solve runs the full pipeline on a validated model: stiffness, distribution,
// fixed-end moments, relaxation and reactions. Hitting the iteration cap is
// not an error; check Converged or ConvergenceErr.
func Solve(m *beam.Model, opts Options) (*Result, error) {
	if m == nil {
		return nil, errors.New("no beam model to solve")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &Result{Model: m, Options: opts}
	r.Stiffness = StiffnessFactors(m, opts.Stiffness)
	r.Distribution = DistributionFactors(m, r.Stiffness)
	r.FixedEnd = FixedEndMoments(m)
	r.Solution = Distribute(m, r.FixedEnd, r.Distribution, opts)
	r.EndShears = EndShears(m, r.Total)
	r.Reactions = Reactions(m, r.Total)
	r.segments, _ = chainLayout(m)
	return r, nil
}

// Analyze builds the model from input and solves it
func Analyze(in *beam.Input, opts Options) (*Result, error) {
	m, err := in.Build()
	if err != nil {
		return nil, err
	}
	return Solve(m, opts)
}

// WithSettings overrides the convergence parameters with the non-zero values
// carried by an input file
func (o Options) WithSettings(s beam.SolverSettings) Options {
	if s.MaxIterations != 0 {
		o.MaxIterations = s.MaxIterations
	}
	if s.Tolerance != 0 {
		o.Tolerance = s.Tolerance
	}
	return o
}

// MaxBalance returns the largest balance of the last iteration performed
func (r *Result) MaxBalance() float64 {
	if len(r.Iterations) == 0 {
		return 0
	}
	return r.Iterations[len(r.Iterations)-1].MaxBalance
}

// ConvergenceErr returns a *ConvergenceLimitError when the tolerance was not
// met, nil otherwise
func (r *Result) ConvergenceErr() error {
	if r.Converged {
		return nil
	}
	return &ConvergenceLimitError{
		Iterations: len(r.Iterations),
		MaxBalance: r.MaxBalance(),
		Tolerance:  r.Options.Tolerance,
	}
}

// Moment returns the final moment at a member-end
func (r *Result) Moment(from, to string) float64 {
	return r.Total.Get(MemberEnd{From: from, To: to})
}

// Reaction returns the reaction at a joint
func (r *Result) Reaction(label string) (Reaction, bool) {
	for _, rc := range r.Reactions {
		if rc.Joint == label {
			return rc, true
		}
	}
	return Reaction{}, false
}

// TableRow is one line of the distribution table, in the order of Total.Ends
type TableRow struct {
	Label  string
	Values []float64
}

// Table lays out the audit trail of the relaxation: distribution factors,
// fixed-end moments, the balance and carry-over of every iteration, and the
// final totals
func (r *Result) Table() []TableRow {
	ends := r.Total.Ends()

	df := make(map[MemberEnd]float64, len(r.Distribution))
	for _, d := range r.Distribution {
		df[d.End] = d.Value
	}
	dfs := make([]float64, len(ends))
	for i, e := range ends {
		dfs[i] = df[e]
	}

	rows := make([]TableRow, 0, 3+2*len(r.Iterations))
	rows = append(rows,
		TableRow{Label: "DF", Values: dfs},
		TableRow{Label: "FEM", Values: r.Initial.Values()},
	)
	for _, it := range r.Iterations {
		rows = append(rows,
			TableRow{Label: fmt.Sprintf("Bal %d", it.Index), Values: it.Balance.Values()},
			TableRow{Label: fmt.Sprintf("CO %d", it.Index), Values: it.CarryOver.Values()},
		)
	}
	rows = append(rows, TableRow{Label: "Total", Values: r.Total.Values()})
	return rows
}

// MaxMoment returns the member-end with the largest final moment magnitude
func (r *Result) MaxMoment() (MemberEnd, float64) {
	var end MemberEnd
	var value float64
	for i, e := range r.Total.Ends() {
		v := r.Total.Get(e)
		if i == 0 || math.Abs(v) > math.Abs(value) {
			end, value = e, v
		}
	}
	return end, value
}
