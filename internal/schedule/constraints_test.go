package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/solver"
)

func solveAssignments(t *testing.T, employees []models.Employee, shifts []models.ShiftInstance, limits models.SchedulingLimits) (*AssignmentModel, solver.Result) {
	t.Helper()
	m := solver.NewModel()
	am := NewAssignmentModel(m, employees, shifts)
	m.AddConstraints(CompileConstraints(am, limits))
	return am, solver.New(m, solver.Options{}).Solve(context.Background())
}

func defaultLimits() models.SchedulingLimits {
	return models.SchedulingLimits{
		MaxHoursPerEmployee:   40,
		MaxNightShiftsPerWeek: 2,
		MinHoursBetweenShifts: 10,
	}
}

func morningShift(id string, y, m, d int) models.ShiftInstance {
	date := day(y, time.Month(m), d)
	return models.ShiftInstance{
		ID:              id,
		TemplateID:      "morning",
		Date:            date,
		StartTime:       "09:00",
		EndTime:         "17:00",
		StartMinutes:    9 * 60,
		EndMinutes:      17 * 60,
		DurationMinutes: 8 * 60,
		RequiredRoles:   []models.RoleRequirement{{Role: "Manager", Count: 1}},
		Night:           false,
		Weekend:         isWeekend(date),
		WeekKey:         WeekKeyFor(date),
	}
}

func TestRoleCoverageAssignsExactHeadcount(t *testing.T) {
	employees := []models.Employee{
		{ID: "alice", Role: "Manager", MaxHoursPerWeek: 40},
		{ID: "bob", Role: "Cashier", MaxHoursPerWeek: 40},
	}
	shifts := []models.ShiftInstance{morningShift("shift-1", 2024, 6, 3)}

	am, res := solveAssignments(t, employees, shifts, defaultLimits())

	require.True(t, res.Status.HasSolution())
	assert.True(t, res.BoolValue(am.Var(0, 0)))
	assert.False(t, res.BoolValue(am.Var(1, 0)))
}

func TestAvailabilityBlocksAssignment(t *testing.T) {
	employees := []models.Employee{{
		ID: "alice", Role: "Manager", MaxHoursPerWeek: 40,
		// Only available Saturdays; the shift is on a Monday.
		Availability: []models.AvailabilityWindow{{DayOfWeek: 5, StartTime: "09:00", EndTime: "17:00"}},
	}}
	shifts := []models.ShiftInstance{morningShift("shift-1", 2024, 6, 3)}

	_, res := solveAssignments(t, employees, shifts, defaultLimits())

	assert.Equal(t, solver.StatusInfeasible, res.Status)
}

func TestAvailabilityWindowMustCoverShift(t *testing.T) {
	employees := []models.Employee{{
		ID: "alice", Role: "Manager", MaxHoursPerWeek: 40,
		// Monday, but the window ends before the shift does.
		Availability: []models.AvailabilityWindow{{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"}},
	}}
	shifts := []models.ShiftInstance{morningShift("shift-1", 2024, 6, 3)}

	_, res := solveAssignments(t, employees, shifts, defaultLimits())

	assert.Equal(t, solver.StatusInfeasible, res.Status)
}

func TestOneShiftPerDay(t *testing.T) {
	employees := []models.Employee{{ID: "alice", Role: "Manager", MaxHoursPerWeek: 40}}
	s1 := morningShift("shift-1", 2024, 6, 3)
	s2 := morningShift("shift-2", 2024, 6, 3)
	s2.StartTime, s2.EndTime = "17:00", "23:00"
	s2.StartMinutes, s2.EndMinutes = 17*60, 23*60
	shifts := []models.ShiftInstance{s1, s2}

	// Both shifts demand one Manager and alice is the only one, so any
	// schedule would need her twice on the same day.
	_, res := solveAssignments(t, employees, shifts, defaultLimits())

	assert.Equal(t, solver.StatusInfeasible, res.Status)
}

func TestWeeklyHourCap(t *testing.T) {
	employees := []models.Employee{{ID: "alice", Role: "Manager", MaxHoursPerWeek: 40}}
	var shifts []models.ShiftInstance
	for d := 3; d <= 7; d++ {
		shifts = append(shifts, morningShift("shift-"+string(rune('0'+d)), 2024, 6, d))
	}

	limits := defaultLimits()
	limits.MaxHoursPerEmployee = 16 // only two 8h shifts fit

	_, res := solveAssignments(t, employees, shifts, limits)

	assert.Equal(t, solver.StatusInfeasible, res.Status)

	limits.MaxHoursPerEmployee = 40
	am, res := solveAssignments(t, employees, shifts, limits)
	require.True(t, res.Status.HasSolution())
	assigned := 0
	for s := range shifts {
		if res.BoolValue(am.Var(0, s)) {
			assigned++
		}
	}
	assert.Equal(t, 5, assigned)
}

func TestMinimumRestBetweenConsecutiveDays(t *testing.T) {
	employees := []models.Employee{{ID: "alice", Role: "Manager", MaxHoursPerWeek: 60}}

	late := morningShift("shift-1", 2024, 6, 3)
	late.EndTime = "23:00"
	late.EndMinutes = 23 * 60
	early := morningShift("shift-2", 2024, 6, 4)
	early.StartTime = "06:00"
	early.StartMinutes = 6 * 60

	limits := defaultLimits()
	limits.MinHoursBetweenShifts = 10 // only 7h rest between 23:00 and 06:00

	_, res := solveAssignments(t, employees, []models.ShiftInstance{late, early}, limits)
	assert.Equal(t, solver.StatusInfeasible, res.Status)

	limits.MinHoursBetweenShifts = 6
	_, res = solveAssignments(t, employees, []models.ShiftInstance{late, early}, limits)
	assert.True(t, res.Status.HasSolution())
}

func TestNightShiftWeeklyCap(t *testing.T) {
	employees := []models.Employee{{ID: "alice", Role: "Manager", MaxHoursPerWeek: 60}}
	var shifts []models.ShiftInstance
	for d := 3; d <= 5; d++ {
		sh := morningShift("shift-"+string(rune('0'+d)), 2024, 6, d)
		sh.StartTime, sh.EndTime = "22:00", "06:00"
		sh.StartMinutes, sh.EndMinutes = 22*60, 6*60
		sh.Night = true
		shifts = append(shifts, sh)
	}

	limits := defaultLimits()
	limits.MaxNightShiftsPerWeek = 2
	limits.MinHoursBetweenShifts = 0

	// Three night shifts all requiring the only Manager, but only two
	// night assignments allowed per week.
	_, res := solveAssignments(t, employees, shifts, limits)
	assert.Equal(t, solver.StatusInfeasible, res.Status)

	limits.MaxNightShiftsPerWeek = 3
	_, res = solveAssignments(t, employees, shifts, limits)
	assert.True(t, res.Status.HasSolution())
}

func TestFairnessCapSpreadsShifts(t *testing.T) {
	employees := []models.Employee{
		{ID: "alice", Role: "Manager", MaxHoursPerWeek: 60},
		{ID: "bob", Role: "Manager", MaxHoursPerWeek: 60},
	}
	var shifts []models.ShiftInstance
	for d := 3; d <= 6; d++ {
		shifts = append(shifts, morningShift("shift-"+string(rune('0'+d)), 2024, 6, d))
	}

	limits := defaultLimits()
	limits.PrioritizeFairness = 0.9

	am, res := solveAssignments(t, employees, shifts, limits)
	require.True(t, res.Status.HasSolution())

	// 4 shifts over 2 employees caps each at 3.
	for e := range employees {
		count := 0
		for s := range shifts {
			if res.BoolValue(am.Var(e, s)) {
				count++
			}
		}
		assert.LessOrEqual(t, count, 3)
	}
}

func TestShiftWithoutRolesNeedsAnyEmployee(t *testing.T) {
	employees := []models.Employee{{ID: "alice", Role: "Cashier", MaxHoursPerWeek: 40}}
	sh := morningShift("shift-1", 2024, 6, 3)
	sh.RequiredRoles = nil

	am, res := solveAssignments(t, employees, []models.ShiftInstance{sh}, defaultLimits())

	require.True(t, res.Status.HasSolution())
	assert.True(t, res.BoolValue(am.Var(0, 0)))
}
