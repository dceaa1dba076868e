package solver

import "fmt"

// Var identifies a decision variable inside a Model.
type Var int

// Op is the relation of a linear constraint.
type Op int

const (
	OpEq Op = iota
	OpLe
	OpGe
)

// Term is a single coefficient*variable product.
type Term struct {
	Var  Var
	Coef int64
}

// LinearExpr accumulates terms of a linear expression.
type LinearExpr struct {
	terms []Term
}

// NewLinearExpr returns an empty expression.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// AddVar appends a variable with coefficient 1.
func (e *LinearExpr) AddVar(v Var) *LinearExpr {
	return e.AddTerm(v, 1)
}

// AddTerm appends coef*v to the expression.
func (e *LinearExpr) AddTerm(v Var, coef int64) *LinearExpr {
	if coef != 0 {
		e.terms = append(e.terms, Term{Var: v, Coef: coef})
	}
	return e
}

// Terms returns a copy of the accumulated terms.
func (e *LinearExpr) Terms() []Term {
	out := make([]Term, len(e.terms))
	copy(out, e.terms)
	return out
}

// Constraint is a pure-data linear relation over model variables.
// It has no behavior of its own; the search engine checks and propagates it.
type Constraint struct {
	Terms []Term
	Op    Op
	Rhs   int64
}

// Model holds the variable domains, the constraint list and the
// minimization objective. A model is built once and never mutated by the
// solver; all search state lives in the Solver.
type Model struct {
	names       []string
	lower       []int64
	upper       []int64
	constraints []Constraint
	objective   []Term
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar allocates a 0/1 decision variable.
func (m *Model) NewBoolVar(name string) Var {
	return m.NewIntVar(0, 1, name)
}

// NewIntVar allocates an integer variable with inclusive bounds.
func (m *Model) NewIntVar(lo, hi int64, name string) Var {
	if hi < lo {
		panic(fmt.Sprintf("solver: variable %q has empty domain [%d,%d]", name, lo, hi))
	}
	m.names = append(m.names, name)
	m.lower = append(m.lower, lo)
	m.upper = append(m.upper, hi)
	return Var(len(m.names) - 1)
}

// NumVars reports how many variables have been allocated.
func (m *Model) NumVars() int {
	return len(m.names)
}

// Name returns the label given to v at allocation time.
func (m *Model) Name(v Var) string {
	return m.names[v]
}

// AddEquality constrains expr == rhs.
func (m *Model) AddEquality(expr *LinearExpr, rhs int64) {
	m.add(expr, OpEq, rhs)
}

// AddLessOrEqual constrains expr <= rhs.
func (m *Model) AddLessOrEqual(expr *LinearExpr, rhs int64) {
	m.add(expr, OpLe, rhs)
}

// AddGreaterOrEqual constrains expr >= rhs.
func (m *Model) AddGreaterOrEqual(expr *LinearExpr, rhs int64) {
	m.add(expr, OpGe, rhs)
}

// AddConstraints appends pre-built constraints, e.g. the immutable list
// produced by a constraint compiler.
func (m *Model) AddConstraints(cs []Constraint) {
	m.constraints = append(m.constraints, cs...)
}

// FixVar pins a variable to a single value.
func (m *Model) FixVar(v Var, value int64) {
	m.lower[v] = value
	m.upper[v] = value
}

// Minimize sets the objective. Calling it again replaces the previous
// objective; never calling it leaves the model as a pure feasibility
// problem.
func (m *Model) Minimize(expr *LinearExpr) {
	m.objective = expr.Terms()
}

// Constraints exposes the constraint list for inspection.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.constraints))
	copy(out, m.constraints)
	return out
}

func (m *Model) add(expr *LinearExpr, op Op, rhs int64) {
	m.constraints = append(m.constraints, Constraint{Terms: expr.Terms(), Op: op, Rhs: rhs})
}
