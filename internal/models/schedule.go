package models

import "time"

// ShiftStatus tracks assignment state of a generated shift.
type ShiftStatus string

const (
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusPending   ShiftStatus = "pending"
	// ShiftStatusConflict is reserved for over-assignment detection and is
	// not emitted by the current projector.
	ShiftStatusConflict ShiftStatus = "conflict"
)

// ViolationType marks a violation as hard or soft.
type ViolationType string

const (
	ViolationHard ViolationType = "hard"
	ViolationSoft ViolationType = "soft"
)

// AvailabilityWindow is one weekly availability slot of an employee.
// DayOfWeek uses Monday=0 through Sunday=6, matching the wire contract.
type AvailabilityWindow struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// Employee is immutable for the duration of one solve.
type Employee struct {
	ID              string
	Name            string
	Role            string
	Skills          []string
	MaxHoursPerWeek int
	Availability    []AvailabilityWindow
	Preferences     []string
	Email           string
}

// RoleRequirement pins a headcount for one role on a shift template.
type RoleRequirement struct {
	Role  string
	Count int
}

// ShiftTemplate is the reusable definition of a recurring work slot.
type ShiftTemplate struct {
	ID            string
	Name          string
	StartTime     string
	EndTime       string
	RequiredRoles []RoleRequirement
	// Duration is in hours, as supplied by the caller.
	Duration      float64
	IsRepeating   bool
	RepeatPattern string
	Priority      int
}

// WeekendRules are advisory period-level weekend policies. They are carried
// through the configuration but not enforced by the constraint compiler.
type WeekendRules struct {
	RotateWeekends      bool
	AvoidBackToBack     bool
	MaxWeekendsPerMonth int
}

// SchedulingPeriod bounds the planning horizon. Dates are normalized to
// midnight UTC; DaysOff and Holidays are both excluded from expansion.
type SchedulingPeriod struct {
	StartDate                time.Time
	EndDate                  time.Time
	DaysOff                  []time.Time
	Holidays                 []time.Time
	MinRestTimeBetweenShifts int
	WeekendRules             WeekendRules
}

// SchedulingLimits are the hard thresholds applied by the constraint
// compiler. MaxShiftsPerDay is carried for contract compatibility; the
// compiler always enforces one shift per employee per day.
type SchedulingLimits struct {
	MaxHoursPerEmployee   int
	MaxShiftsPerDay       int
	MaxNightShiftsPerWeek int
	MinHoursBetweenShifts int
	PreferFixedTeams      bool
	PrioritizeFairness    float64
}

// SchedulingPreferences are the soft-preference toggles.
type SchedulingPreferences struct {
	RespectEmployeePreferences     bool
	MinimizeNightShifts            bool
	SpreadWeekendShiftsFairly      bool
	MinimizeConsecutiveNightShifts bool
	PreferenceWeight               float64
}

// SchedulingConfig is the fully validated input to one solve.
type SchedulingConfig struct {
	Employees   []Employee
	ShiftTypes  []ShiftTemplate
	Period      SchedulingPeriod
	Limits      SchedulingLimits
	Preferences SchedulingPreferences
}

// ShiftInstance is one concrete, dated occurrence of a shift template.
// All time quantities are pre-computed integer minutes; WeekKey is the
// canonical week identifier shared by every weekly constraint.
type ShiftInstance struct {
	ID              string
	TemplateID      string
	Date            time.Time
	StartTime       string
	EndTime         string
	StartMinutes    int
	EndMinutes      int
	DurationMinutes int
	RequiredRoles   []RoleRequirement
	Night           bool
	Weekend         bool
	WeekKey         string
}

// GeneratedShift is a shift instance with its solved assignment.
type GeneratedShift struct {
	ID                string      `json:"id"`
	ShiftTypeID       string      `json:"shiftTypeId"`
	Date              time.Time   `json:"date"`
	StartTime         string      `json:"startTime"`
	EndTime           string      `json:"endTime"`
	AssignedEmployees []string    `json:"assignedEmployees"`
	Status            ShiftStatus `json:"status"`
}

// EmployeeUtilization summarises one employee's share of the schedule.
type EmployeeUtilization struct {
	EmployeeID            string  `json:"employeeId"`
	TotalHours            float64 `json:"totalHours"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	ShiftsAssigned        int     `json:"shiftsAssigned"`
	PreferencesRespected  int     `json:"preferencesRespected"`
}

// ScheduleAnalytics aggregates period-wide metrics.
type ScheduleAnalytics struct {
	ShiftCoveragePercentage     float64               `json:"shiftCoveragePercentage"`
	PreferenceSatisfactionScore float64               `json:"preferenceSatisfactionScore"`
	FairnessMetric              float64               `json:"fairnessMetric"`
	TotalHoursScheduled         float64               `json:"totalHoursScheduled"`
	EmployeeUtilization         []EmployeeUtilization `json:"employeeUtilization"`
}

// ConstraintViolation reports why a schedule could not be produced.
type ConstraintViolation struct {
	Type              ViolationType `json:"type"`
	Description       string        `json:"description"`
	Severity          int           `json:"severity"`
	AffectedEmployees []string      `json:"affectedEmployees"`
	AffectedShifts    []string      `json:"affectedShifts"`
}

// ScheduleResult is the complete outcome of one solve. Violations is empty
// on success and carries a single synthetic hard violation when the model
// is infeasible.
type ScheduleResult struct {
	Shifts     []GeneratedShift      `json:"shifts"`
	Analytics  ScheduleAnalytics     `json:"analytics"`
	Violations []ConstraintViolation `json:"violations"`

	// SolverStatus is surfaced via response metadata, not the result body.
	SolverStatus string `json:"-"`
}
