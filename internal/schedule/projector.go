package schedule

import (
	"gonum.org/v1/gonum/stat"

	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/solver"
)

// Project reads a solver result back into the schedule domain. Infeasible
// and unknown outcomes produce an empty schedule with a single hard
// violation; any solution, optimal or not, is projected as-is.
func Project(cfg models.SchedulingConfig, am *AssignmentModel, res solver.Result, obj Objective) models.ScheduleResult {
	if !res.Status.HasSolution() {
		return infeasibleResult(res.Status)
	}

	shifts := make([]models.GeneratedShift, 0, len(am.Shifts))
	assignedCounts := make([]float64, len(am.Employees))
	assignedHours := make([]float64, len(am.Employees))
	nightAssigned := make([]int, len(am.Employees))

	for s, sh := range am.Shifts {
		assigned := make([]string, 0, 2)
		for e, emp := range am.Employees {
			if res.BoolValue(am.Var(e, s)) {
				assigned = append(assigned, emp.ID)
				assignedCounts[e]++
				assignedHours[e] += float64(sh.DurationMinutes) / 60
				if sh.Night {
					nightAssigned[e]++
				}
			}
		}
		status := models.ShiftStatusPending
		if len(assigned) > 0 {
			status = models.ShiftStatusConfirmed
		}
		shifts = append(shifts, models.GeneratedShift{
			ID:                sh.ID,
			ShiftTypeID:       sh.TemplateID,
			Date:              sh.Date,
			StartTime:         sh.StartTime,
			EndTime:           sh.EndTime,
			AssignedEmployees: assigned,
			Status:            status,
		})
	}

	utilization := make([]models.EmployeeUtilization, 0, len(am.Employees))
	totalHours := 0.0
	for e, emp := range am.Employees {
		totalHours += assignedHours[e]
		utilization = append(utilization, models.EmployeeUtilization{
			EmployeeID:            emp.ID,
			TotalHours:            assignedHours[e],
			UtilizationPercentage: assignedHours[e] / float64(emp.MaxHoursPerWeek) * 100,
			ShiftsAssigned:        int(assignedCounts[e]),
			PreferencesRespected:  preferencesRespected(cfg.Preferences, int(assignedCounts[e]), nightAssigned[e]),
		})
	}

	return models.ScheduleResult{
		Shifts: shifts,
		Analytics: models.ScheduleAnalytics{
			ShiftCoveragePercentage:     coveragePercentage(shifts),
			PreferenceSatisfactionScore: satisfactionScore(res, obj),
			FairnessMetric:              fairnessMetric(assignedCounts),
			TotalHoursScheduled:         totalHours,
			EmployeeUtilization:         utilization,
		},
		Violations:   []models.ConstraintViolation{},
		SolverStatus: res.Status.String(),
	}
}

func infeasibleResult(status solver.Status) models.ScheduleResult {
	return models.ScheduleResult{
		Shifts: []models.GeneratedShift{},
		Analytics: models.ScheduleAnalytics{
			EmployeeUtilization: []models.EmployeeUtilization{},
		},
		Violations: []models.ConstraintViolation{{
			Type:              models.ViolationHard,
			Description:       "No feasible solution found with current constraints",
			Severity:          10,
			AffectedEmployees: []string{},
			AffectedShifts:    []string{},
		}},
		SolverStatus: status.String(),
	}
}

func coveragePercentage(shifts []models.GeneratedShift) float64 {
	if len(shifts) == 0 {
		return 0
	}
	filled := 0
	for _, s := range shifts {
		if len(s.AssignedEmployees) > 0 {
			filled++
		}
	}
	return float64(filled) / float64(len(shifts)) * 100
}

// satisfactionScore normalizes the achieved objective against its worst
// bound. A schedule with no soft preferences scores 100.
func satisfactionScore(res solver.Result, obj Objective) float64 {
	if !obj.HasTerms || obj.WorstBound == 0 {
		return 100
	}
	score := (1 - float64(res.Objective)/float64(obj.WorstBound)) * 100
	return clampPercent(score)
}

// fairnessMetric measures how evenly shifts are spread: 100 means a
// perfectly even distribution, lower values mean higher dispersion
// relative to the mean load.
func fairnessMetric(counts []float64) float64 {
	if len(counts) < 2 {
		return 100
	}
	mean, std := stat.MeanStdDev(counts, nil)
	if mean == 0 {
		return 100
	}
	return clampPercent((1 - std/mean) * 100)
}

// preferencesRespected estimates, per employee, the share of assigned
// shifts compatible with the enabled soft preferences.
func preferencesRespected(prefs models.SchedulingPreferences, assigned, nights int) int {
	if assigned == 0 || !prefs.MinimizeNightShifts {
		return 100
	}
	return (assigned - nights) * 100 / assigned
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
