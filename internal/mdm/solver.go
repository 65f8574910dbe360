package mdm

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gomdm/internal/beam"
)

// Iteration is one balance/carry-over cycle of the solver
type Iteration struct {
	Index      int         // 1-based
	Balance    MomentState // moment applied at each member-end to balance its joint
	CarryOver  MomentState // half of the far end's balance
	Moments    MomentState // state after this iteration
	MaxBalance float64     // largest |balance| in this iteration
}

// Solution is the ordered log of the relaxation
type Solution struct {
	Initial    MomentState // fixed-end moments
	Iterations []Iteration
	Total      MomentState // state after the last iteration performed
	Converged  bool
}

// jointPlan lists the member-ends balanced at one joint
type jointPlan struct {
	label    string
	ends     []int
	opposite []int
	df       []float64
}

type plan struct {
	layout *layout
	joints []jointPlan
}

func newPlan(m *beam.Model, l *layout, dfs []DistributionFactor) *plan {
	df := make(map[MemberEnd]float64, len(dfs))
	for _, d := range dfs {
		df[d.End] = d.Value
	}

	p := &plan{layout: l}
	for _, j := range m.Joints {
		if !j.Support.Rotates() {
			continue
		}
		jp := jointPlan{label: j.Label}
		for _, s := range m.SpansAt(j.Label) {
			end := MemberEnd{From: j.Label, To: s.Far(j.Label)}
			jp.ends = append(jp.ends, l.index[end])
			jp.opposite = append(jp.opposite, l.index[end.Opposite()])
			jp.df = append(jp.df, df[end])
		}
		p.joints = append(p.joints, jp)
	}
	return p
}

// step computes the next state from prev. Every read sees prev only, so the
// order in which joints are visited does not matter.
func (p *plan) step(index int, prev MomentState) Iteration {
	balance := p.layout.zero()
	carry := p.layout.zero()

	for _, jp := range p.joints {
		var unbalanced float64
		for _, i := range jp.ends {
			unbalanced += prev.values[i]
		}
		for n, i := range jp.ends {
			b := -unbalanced * jp.df[n]
			balance[i] = b
			carry[jp.opposite[n]] += b / 2
		}
	}

	next := p.layout.zero()
	floats.AddTo(next, prev.values, balance)
	floats.Add(next, carry)

	return Iteration{
		Index:      index,
		Balance:    p.layout.state(balance),
		CarryOver:  p.layout.state(carry),
		Moments:    p.layout.state(next),
		MaxBalance: floats.Norm(balance, math.Inf(1)),
	}
}

// Distribute runs the Hardy Cross relaxation from the fixed-end moments until
// the largest balance falls below opts.Tolerance or opts.MaxIterations is
// reached. Values are kept at full precision.
func Distribute(m *beam.Model, fems []FixedEndMoment, dfs []DistributionFactor, opts Options) Solution {
	l := newLayout(m)

	initial := l.zero()
	for _, f := range fems {
		initial[l.index[MemberEnd{From: f.From, To: f.To}]] = f.FromTo
		initial[l.index[MemberEnd{From: f.To, To: f.From}]] = f.ToFrom
	}

	sol := Solution{Initial: l.state(initial)}
	p := newPlan(m, l, dfs)

	state := sol.Initial
	for i := 1; i <= opts.MaxIterations; i++ {
		it := p.step(i, state)
		sol.Iterations = append(sol.Iterations, it)
		state = it.Moments
		if it.MaxBalance < opts.Tolerance {
			sol.Converged = true
			break
		}
	}
	sol.Total = state
	return sol
}
