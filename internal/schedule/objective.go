package schedule

import (
	"fmt"

	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/solver"
)

// Objective is the compiled soft-preference objective: the expression to
// minimize, the side constraints that define its auxiliary variables and a
// worst-case bound used to normalize the satisfaction score.
type Objective struct {
	Expr       *solver.LinearExpr
	Side       []solver.Constraint
	WorstBound int64
	HasTerms   bool
}

// CompileObjective builds the minimization objective from the soft
// preferences. Fairness introduces one deviation auxiliary per employee;
// spreading weekend shifts adds a hard per-employee cap rather than an
// objective term.
func CompileObjective(m *solver.Model, am *AssignmentModel, limits models.SchedulingLimits, prefs models.SchedulingPreferences) Objective {
	obj := Objective{Expr: solver.NewLinearExpr()}
	totalShifts := int64(len(am.Shifts))

	// Fairness: penalize each employee's deviation from the ideal share.
	if limits.PrioritizeFairness > 0 && len(am.Employees) > 0 {
		ideal := totalShifts / int64(len(am.Employees))
		weight := int64(limits.PrioritizeFairness * 100)
		for e, emp := range am.Employees {
			dev := m.NewIntVar(0, totalShifts, fmt.Sprintf("deviation_%s", emp.ID))

			// dev >= assigned - ideal
			over := []solver.Term{{Var: dev, Coef: 1}}
			// dev >= ideal - assigned
			under := []solver.Term{{Var: dev, Coef: 1}}
			for s := range am.Shifts {
				over = append(over, solver.Term{Var: am.Var(e, s), Coef: -1})
				under = append(under, solver.Term{Var: am.Var(e, s), Coef: 1})
			}
			obj.Side = append(obj.Side,
				solver.Constraint{Terms: over, Op: solver.OpGe, Rhs: -ideal},
				solver.Constraint{Terms: under, Op: solver.OpGe, Rhs: ideal},
			)

			obj.Expr.AddTerm(dev, weight)
			obj.WorstBound += weight * totalShifts
			obj.HasTerms = true
		}
	}

	// Minimize night assignments across all employees.
	if prefs.MinimizeNightShifts {
		for e := range am.Employees {
			for s := range am.Shifts {
				if am.Shifts[s].Night {
					obj.Expr.AddVar(am.Var(e, s))
					obj.WorstBound++
					obj.HasTerms = true
				}
			}
		}
	}

	// Weekend spreading caps weekend assignments per employee for the
	// whole period.
	if prefs.SpreadWeekendShiftsFairly {
		for e := range am.Employees {
			var terms []solver.Term
			for s := range am.Shifts {
				if am.Shifts[s].Weekend {
					terms = append(terms, solver.Term{Var: am.Var(e, s), Coef: 1})
				}
			}
			if len(terms) == 0 {
				continue
			}
			obj.Side = append(obj.Side, solver.Constraint{Terms: terms, Op: solver.OpLe, Rhs: 2})
		}
	}

	return obj
}
