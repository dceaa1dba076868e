package schedule

import (
	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/solver"
)

// CompileConstraints translates the hard scheduling rules into an immutable
// constraint list for the solver. The compiler never mutates the model; the
// caller installs the returned list with Model.AddConstraints.
//
// Rules, in order: availability, role coverage, one shift per day, weekly
// hour cap, minimum rest between consecutive days, weekly night shift cap
// and the fairness shift cap.
func CompileConstraints(am *AssignmentModel, limits models.SchedulingLimits) []solver.Constraint {
	var out []solver.Constraint

	out = append(out, availabilityConstraints(am)...)
	out = append(out, coverageConstraints(am)...)
	out = append(out, oneShiftPerDayConstraints(am)...)
	out = append(out, weeklyHourConstraints(am, limits.MaxHoursPerEmployee)...)
	out = append(out, restConstraints(am, limits.MinHoursBetweenShifts)...)
	out = append(out, nightShiftConstraints(am, limits.MaxNightShiftsPerWeek)...)
	if limits.PrioritizeFairness > 0.5 {
		out = append(out, fairnessCapConstraints(am)...)
	}
	return out
}

// availabilityConstraints forbids assignments outside an employee's stated
// availability. Employees with no availability windows are treated as always
// available.
func availabilityConstraints(am *AssignmentModel) []solver.Constraint {
	var out []solver.Constraint
	for e, emp := range am.Employees {
		if len(emp.Availability) == 0 {
			continue
		}
		for s, sh := range am.Shifts {
			if employeeAvailable(emp, sh) {
				continue
			}
			out = append(out, solver.Constraint{
				Terms: []solver.Term{{Var: am.Var(e, s), Coef: 1}},
				Op:    solver.OpEq,
				Rhs:   0,
			})
		}
	}
	return out
}

func employeeAvailable(emp models.Employee, sh models.ShiftInstance) bool {
	day := mondayWeekday(sh.Date)
	for _, w := range emp.Availability {
		if w.DayOfWeek != day {
			continue
		}
		if sh.StartMinutes >= clockMinutes(w.StartTime) && sh.EndMinutes <= clockMinutes(w.EndTime) {
			return true
		}
	}
	return false
}

// coverageConstraints pins headcount per role on every shift. Shifts without
// role requirements only demand at least one assignee of any role.
func coverageConstraints(am *AssignmentModel) []solver.Constraint {
	var out []solver.Constraint
	for s, sh := range am.Shifts {
		if len(sh.RequiredRoles) == 0 {
			terms := make([]solver.Term, 0, len(am.Employees))
			for e := range am.Employees {
				terms = append(terms, solver.Term{Var: am.Var(e, s), Coef: 1})
			}
			if len(terms) > 0 {
				out = append(out, solver.Constraint{Terms: terms, Op: solver.OpGe, Rhs: 1})
			}
			continue
		}
		for _, req := range sh.RequiredRoles {
			var terms []solver.Term
			for e, emp := range am.Employees {
				if emp.Role == req.Role {
					terms = append(terms, solver.Term{Var: am.Var(e, s), Coef: 1})
				}
			}
			if len(terms) == 0 {
				// Unknown roles are rejected during configuration
				// validation before compilation.
				continue
			}
			out = append(out, solver.Constraint{Terms: terms, Op: solver.OpEq, Rhs: int64(req.Count)})
		}
	}
	return out
}

// oneShiftPerDayConstraints emits a pairwise exclusion for every pair of
// shifts falling on the same calendar day.
func oneShiftPerDayConstraints(am *AssignmentModel) []solver.Constraint {
	var out []solver.Constraint
	for e := range am.Employees {
		for i := range am.Shifts {
			for j := i + 1; j < len(am.Shifts); j++ {
				if !sameCalendarDay(am.Shifts[i].Date, am.Shifts[j].Date) {
					continue
				}
				out = append(out, solver.Constraint{
					Terms: []solver.Term{
						{Var: am.Var(e, i), Coef: 1},
						{Var: am.Var(e, j), Coef: 1},
					},
					Op:  solver.OpLe,
					Rhs: 1,
				})
			}
		}
	}
	return out
}

// weeklyHourConstraints caps total assigned minutes per employee per week.
func weeklyHourConstraints(am *AssignmentModel, maxHoursPerEmployee int) []solver.Constraint {
	maxMinutes := int64(maxHoursPerEmployee) * 60
	byWeek := shiftsByWeek(am.Shifts)

	var out []solver.Constraint
	for e := range am.Employees {
		for _, week := range byWeek {
			terms := make([]solver.Term, 0, len(week))
			for _, s := range week {
				terms = append(terms, solver.Term{Var: am.Var(e, s), Coef: int64(am.Shifts[s].DurationMinutes)})
			}
			out = append(out, solver.Constraint{Terms: terms, Op: solver.OpLe, Rhs: maxMinutes})
		}
	}
	return out
}

// restConstraints excludes back-to-back assignments on consecutive days when
// the gap between the first shift's end and the next shift's start is below
// the minimum rest time.
func restConstraints(am *AssignmentModel, minRestHours int) []solver.Constraint {
	var out []solver.Constraint
	for e := range am.Employees {
		for i, first := range am.Shifts {
			for j, second := range am.Shifts {
				if i == j || !nextCalendarDay(first.Date, second.Date) {
					continue
				}
				restMinutes := minutesPerDay - first.EndMinutes + second.StartMinutes
				if restMinutes >= minRestHours*60 {
					continue
				}
				out = append(out, solver.Constraint{
					Terms: []solver.Term{
						{Var: am.Var(e, i), Coef: 1},
						{Var: am.Var(e, j), Coef: 1},
					},
					Op:  solver.OpLe,
					Rhs: 1,
				})
			}
		}
	}
	return out
}

// nightShiftConstraints caps night shift assignments per employee per week.
func nightShiftConstraints(am *AssignmentModel, maxPerWeek int) []solver.Constraint {
	byWeek := shiftsByWeek(am.Shifts)

	var out []solver.Constraint
	for e := range am.Employees {
		for _, week := range byWeek {
			var terms []solver.Term
			for _, s := range week {
				if am.Shifts[s].Night {
					terms = append(terms, solver.Term{Var: am.Var(e, s), Coef: 1})
				}
			}
			if len(terms) == 0 {
				continue
			}
			out = append(out, solver.Constraint{Terms: terms, Op: solver.OpLe, Rhs: int64(maxPerWeek)})
		}
	}
	return out
}

// fairnessCapConstraints bounds the total shifts any single employee may
// take, preventing one employee from absorbing the whole schedule. Applied
// only when fairness is highly prioritized.
func fairnessCapConstraints(am *AssignmentModel) []solver.Constraint {
	if len(am.Employees) == 0 {
		return nil
	}
	maxShifts := len(am.Shifts)/len(am.Employees) + 1
	if maxShifts < 1 {
		maxShifts = 1
	}

	var out []solver.Constraint
	for e := range am.Employees {
		terms := make([]solver.Term, 0, len(am.Shifts))
		for s := range am.Shifts {
			terms = append(terms, solver.Term{Var: am.Var(e, s), Coef: 1})
		}
		out = append(out, solver.Constraint{Terms: terms, Op: solver.OpLe, Rhs: int64(maxShifts)})
	}
	return out
}

// shiftsByWeek groups shift indexes by their week key, preserving the
// expansion order within and across groups.
func shiftsByWeek(shifts []models.ShiftInstance) [][]int {
	index := make(map[string]int)
	var groups [][]int
	for s, sh := range shifts {
		g, ok := index[sh.WeekKey]
		if !ok {
			g = len(groups)
			index[sh.WeekKey] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], s)
	}
	return groups
}
