package schedule

import (
	"fmt"

	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/solver"
)

// AssignmentModel holds one boolean decision variable per (employee, shift
// instance) pair on top of a solver model. Variable creation order is fixed
// by employee order then shift order, which pins the solver's branching
// order and makes results deterministic.
type AssignmentModel struct {
	Employees []models.Employee
	Shifts    []models.ShiftInstance

	vars [][]solver.Var

	empIdx   map[string]int
	shiftIdx map[string]int
}

// NewAssignmentModel creates all assignment variables on m.
func NewAssignmentModel(m *solver.Model, employees []models.Employee, shifts []models.ShiftInstance) *AssignmentModel {
	am := &AssignmentModel{
		Employees: employees,
		Shifts:    shifts,
		vars:      make([][]solver.Var, len(employees)),
		empIdx:    make(map[string]int, len(employees)),
		shiftIdx:  make(map[string]int, len(shifts)),
	}
	for i, emp := range employees {
		am.empIdx[emp.ID] = i
		row := make([]solver.Var, len(shifts))
		for j, sh := range shifts {
			row[j] = m.NewBoolVar(fmt.Sprintf("employee_%s_shift_%s", emp.ID, sh.ID))
		}
		am.vars[i] = row
	}
	for j, sh := range shifts {
		am.shiftIdx[sh.ID] = j
	}
	return am
}

// Var returns the assignment variable for employee e and shift s by index.
func (am *AssignmentModel) Var(e, s int) solver.Var {
	return am.vars[e][s]
}

// VarByID returns the assignment variable for an employee and shift by ID.
func (am *AssignmentModel) VarByID(employeeID, shiftID string) (solver.Var, bool) {
	e, ok := am.empIdx[employeeID]
	if !ok {
		return 0, false
	}
	s, ok := am.shiftIdx[shiftID]
	if !ok {
		return 0, false
	}
	return am.vars[e][s], true
}
