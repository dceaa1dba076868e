// Package solver implements an exact search over integer linear models:
// bounds-consistency propagation combined with depth-first branch-and-bound.
// It is sized for assignment-style models (boolean decision variables plus a
// few bounded auxiliary integers) and trades sophistication for
// predictability: branching order is fixed, so results are deterministic.
package solver

import (
	"context"
	"time"
)

// Status is the outcome of a Solve call.
type Status int

const (
	// StatusUnknown means the search hit a limit before finding any
	// solution or proving infeasibility.
	StatusUnknown Status = iota
	// StatusOptimal means the returned solution is proven best.
	StatusOptimal
	// StatusFeasible means a solution was found but the search stopped
	// (time or node limit) before proving optimality.
	StatusFeasible
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// HasSolution reports whether variable values can be read back.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Options tune the search limits. Zero values mean "no limit".
type Options struct {
	TimeLimit time.Duration
	MaxNodes  int64
}

// Result carries the final status, the objective value of the best solution
// and the solved variable values.
type Result struct {
	Status    Status
	Objective int64
	Nodes     int64

	values []int64
}

// Value returns the solved value of v. Only meaningful when
// Status.HasSolution is true.
func (r Result) Value(v Var) int64 {
	if r.values == nil {
		return 0
	}
	return r.values[v]
}

// BoolValue returns the solved value of a boolean variable.
func (r Result) BoolValue(v Var) bool {
	return r.Value(v) == 1
}

// Solver runs branch-and-bound over one model. It owns all mutable search
// state; the model itself is read-only during the search.
type Solver struct {
	model *Model
	opts  Options

	// rows is the constraint list normalized to <= form: an equality
	// contributes two rows, a >= contributes its negation.
	rows []row
}

type row struct {
	terms []Term
	rhs   int64
}

// New prepares a solver for the given model.
func New(m *Model, opts Options) *Solver {
	s := &Solver{model: m, opts: opts}
	for _, c := range m.constraints {
		switch c.Op {
		case OpLe:
			s.rows = append(s.rows, row{terms: c.Terms, rhs: c.Rhs})
		case OpGe:
			s.rows = append(s.rows, negate(c))
		case OpEq:
			s.rows = append(s.rows, row{terms: c.Terms, rhs: c.Rhs})
			s.rows = append(s.rows, negate(c))
		}
	}
	return s
}

func negate(c Constraint) row {
	terms := make([]Term, len(c.Terms))
	for i, t := range c.Terms {
		terms[i] = Term{Var: t.Var, Coef: -t.Coef}
	}
	return row{terms: terms, rhs: -c.Rhs}
}

type searchState struct {
	best      []int64
	bestObj   int64
	found     bool
	nodes     int64
	deadline  time.Time
	hasLimit  bool
	interrupt bool
	ctx       context.Context
}

// Solve runs the search. The context deadline and Options.TimeLimit are both
// honored; whichever expires first stops the search, degrading the result to
// StatusFeasible (incumbent found) or StatusUnknown (none).
func (s *Solver) Solve(ctx context.Context) Result {
	n := s.model.NumVars()
	lo := make([]int64, n)
	hi := make([]int64, n)
	copy(lo, s.model.lower)
	copy(hi, s.model.upper)

	st := &searchState{ctx: ctx}
	if s.opts.TimeLimit > 0 {
		st.deadline = time.Now().Add(s.opts.TimeLimit)
		st.hasLimit = true
	}
	if d, ok := ctx.Deadline(); ok && (!st.hasLimit || d.Before(st.deadline)) {
		st.deadline = d
		st.hasLimit = true
	}

	s.search(st, lo, hi)

	res := Result{Nodes: st.nodes}
	switch {
	case st.interrupt && st.found:
		res.Status = StatusFeasible
	case st.interrupt:
		res.Status = StatusUnknown
	case st.found:
		res.Status = StatusOptimal
	default:
		res.Status = StatusInfeasible
	}
	if st.found {
		res.Objective = st.bestObj
		res.values = st.best
	}
	return res
}

// search explores the subtree rooted at the given bounds. It returns false
// when a limit fired and the search must unwind.
func (s *Solver) search(st *searchState, lo, hi []int64) bool {
	st.nodes++
	if st.nodes&63 == 1 {
		if st.ctx.Err() != nil || (st.hasLimit && time.Now().After(st.deadline)) {
			st.interrupt = true
			return false
		}
	}
	if s.opts.MaxNodes > 0 && st.nodes > s.opts.MaxNodes {
		st.interrupt = true
		return false
	}

	if !s.propagate(lo, hi) {
		return true
	}
	if st.found && s.objectiveLowerBound(lo, hi) >= st.bestObj {
		return true
	}

	branch := -1
	for v := range lo {
		if lo[v] < hi[v] {
			branch = v
			break
		}
	}
	if branch == -1 {
		// All variables fixed; propagation already verified every row.
		obj := int64(0)
		for _, t := range s.model.objective {
			obj += t.Coef * lo[t.Var]
		}
		if !st.found || obj < st.bestObj {
			st.found = true
			st.bestObj = obj
			st.best = append([]int64(nil), lo...)
		}
		return true
	}

	childLo := make([]int64, len(lo))
	childHi := make([]int64, len(hi))
	for val := lo[branch]; val <= hi[branch]; val++ {
		copy(childLo, lo)
		copy(childHi, hi)
		childLo[branch] = val
		childHi[branch] = val
		if !s.search(st, childLo, childHi) {
			return false
		}
	}
	return true
}

// propagate tightens variable bounds to a fixpoint. Every row is of the
// form sum(terms) <= rhs. Returns false on a wipeout.
func (s *Solver) propagate(lo, hi []int64) bool {
	for changed := true; changed; {
		changed = false
		for _, r := range s.rows {
			minSum := int64(0)
			for _, t := range r.terms {
				if t.Coef > 0 {
					minSum += t.Coef * lo[t.Var]
				} else {
					minSum += t.Coef * hi[t.Var]
				}
			}
			if minSum > r.rhs {
				return false
			}
			for _, t := range r.terms {
				if t.Coef > 0 {
					// residual = minSum without this term's contribution
					residual := minSum - t.Coef*lo[t.Var]
					bound := floorDiv(r.rhs-residual, t.Coef)
					if bound < hi[t.Var] {
						if bound < lo[t.Var] {
							return false
						}
						hi[t.Var] = bound
						changed = true
					}
				} else {
					residual := minSum - t.Coef*hi[t.Var]
					bound := ceilDiv(r.rhs-residual, t.Coef)
					if bound > lo[t.Var] {
						if bound > hi[t.Var] {
							return false
						}
						lo[t.Var] = bound
						changed = true
					}
				}
			}
		}
	}
	return true
}

// objectiveLowerBound is the optimistic objective value reachable from the
// current bounds.
func (s *Solver) objectiveLowerBound(lo, hi []int64) int64 {
	bound := int64(0)
	for _, t := range s.model.objective {
		if t.Coef > 0 {
			bound += t.Coef * lo[t.Var]
		} else {
			bound += t.Coef * hi[t.Var]
		}
	}
	return bound
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
