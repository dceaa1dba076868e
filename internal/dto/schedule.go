package dto

import "github.com/rosterly/shift-solver-api/internal/models"

// AvailabilityWindow is one weekly availability slot. DayOfWeek runs
// Monday=0 through Sunday=6.
type AvailabilityWindow struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// Employee describes one schedulable worker.
type Employee struct {
	ID              string               `json:"id" validate:"required"`
	Name            string               `json:"name" validate:"required"`
	Role            string               `json:"role" validate:"required"`
	Skills          []string             `json:"skills"`
	MaxHoursPerWeek int                  `json:"maxHoursPerWeek" validate:"required,min=1"`
	Availability    []AvailabilityWindow `json:"availability" validate:"omitempty,dive"`
	Preferences     []string             `json:"preferences"`
	Email           string               `json:"email" validate:"omitempty,email"`
}

// RoleRequirement pins a headcount for one role on a shift type.
type RoleRequirement struct {
	Role  string `json:"role" validate:"required"`
	Count int    `json:"count" validate:"required,min=1"`
}

// ShiftType is a reusable shift definition.
type ShiftType struct {
	ID            string            `json:"id" validate:"required"`
	Name          string            `json:"name" validate:"required"`
	StartTime     string            `json:"startTime" validate:"required"`
	EndTime       string            `json:"endTime" validate:"required"`
	RequiredRoles []RoleRequirement `json:"requiredRoles" validate:"omitempty,dive"`
	Duration      float64           `json:"duration" validate:"required,gt=0"`
	IsRepeating   bool              `json:"isRepeating"`
	RepeatPattern string            `json:"repeatPattern" validate:"omitempty,oneof=daily weekly custom"`
	Priority      int               `json:"priority"`
}

// WeekendRules carries period-level weekend policies.
type WeekendRules struct {
	RotateWeekends      bool `json:"rotateWeekends"`
	AvoidBackToBack     bool `json:"avoidBackToBack"`
	MaxWeekendsPerMonth int  `json:"maxWeekendsPerMonth"`
}

// SchedulingPeriod bounds the planning horizon. Dates use YYYY-MM-DD.
type SchedulingPeriod struct {
	StartDate                string       `json:"startDate" validate:"required"`
	EndDate                  string       `json:"endDate" validate:"required"`
	DaysOff                  []string     `json:"daysOff"`
	Holidays                 []string     `json:"holidays"`
	MinRestTimeBetweenShifts int          `json:"minRestTimeBetweenShifts"`
	WeekendRules             WeekendRules `json:"weekendRules"`
}

// Constraints are the hard scheduling thresholds.
type Constraints struct {
	MaxHoursPerEmployee   int     `json:"maxHoursPerEmployee" validate:"required,min=1"`
	MaxShiftsPerDay       int     `json:"maxShiftsPerDay"`
	MaxNightShiftsPerWeek int     `json:"maxNightShiftsPerWeek"`
	MinHoursBetweenShifts int     `json:"minHoursBetweenShifts"`
	PreferFixedTeams      bool    `json:"preferFixedTeams"`
	PrioritizeFairness    float64 `json:"prioritizeFairness" validate:"min=0,max=1"`
}

// Preferences are the soft-preference toggles.
type Preferences struct {
	RespectEmployeePreferences     bool    `json:"respectEmployeePreferences"`
	MinimizeNightShifts            bool    `json:"minimizeNightShifts"`
	SpreadWeekendShiftsFairly      bool    `json:"spreadWeekendShiftsFairly"`
	MinimizeConsecutiveNightShifts bool    `json:"minimizeConsecutiveNightShifts"`
	PreferenceWeight               float64 `json:"preferenceWeight"`
}

// GenerateScheduleRequest is the full scheduling configuration.
type GenerateScheduleRequest struct {
	Employees        []Employee       `json:"employees" validate:"required,min=1,dive"`
	ShiftTypes       []ShiftType      `json:"shiftTypes" validate:"required,min=1,dive"`
	SchedulingPeriod SchedulingPeriod `json:"schedulingPeriod" validate:"required"`
	Constraints      Constraints      `json:"constraints" validate:"required"`
	Preferences      Preferences      `json:"preferences"`
}

// GenerateScheduleResponse wraps the solved schedule.
type GenerateScheduleResponse struct {
	Shifts     []models.GeneratedShift      `json:"shifts"`
	Analytics  models.ScheduleAnalytics     `json:"analytics"`
	Violations []models.ConstraintViolation `json:"violations"`
}

// FromResult converts a domain result into the response payload.
func FromResult(res models.ScheduleResult) GenerateScheduleResponse {
	return GenerateScheduleResponse{
		Shifts:     res.Shifts,
		Analytics:  res.Analytics,
		Violations: res.Violations,
	}
}
