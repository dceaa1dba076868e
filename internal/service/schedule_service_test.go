package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shift-solver-api/internal/dto"
	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/pkg/config"
	apperrors "github.com/rosterly/shift-solver-api/pkg/errors"
)

func newTestService() *ScheduleService {
	return NewScheduleService(validator.New(), zap.NewNop(), nil, config.SolverConfig{})
}

func baseRequest() dto.GenerateScheduleRequest {
	return dto.GenerateScheduleRequest{
		Employees: []dto.Employee{{
			ID:              "emp-1",
			Name:            "Alice",
			Role:            "Manager",
			MaxHoursPerWeek: 40,
		}},
		ShiftTypes: []dto.ShiftType{{
			ID:            "morning",
			Name:          "Morning",
			StartTime:     "09:00",
			EndTime:       "17:00",
			RequiredRoles: []dto.RoleRequirement{{Role: "Manager", Count: 1}},
			Duration:      8,
			IsRepeating:   true,
			RepeatPattern: "daily",
		}},
		SchedulingPeriod: dto.SchedulingPeriod{
			StartDate: "2024-06-03",
			EndDate:   "2024-06-03",
		},
		Constraints: dto.Constraints{
			MaxHoursPerEmployee:   40,
			MaxNightShiftsPerWeek: 2,
			MinHoursBetweenShifts: 10,
		},
	}
}

func TestGenerateSingleEmployeeSingleDay(t *testing.T) {
	svc := newTestService()

	result, err := svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	sh := result.Shifts[0]
	assert.Equal(t, "shift-0", sh.ID)
	assert.Equal(t, "morning", sh.ShiftTypeID)
	assert.Equal(t, []string{"emp-1"}, sh.AssignedEmployees)
	assert.Equal(t, models.ShiftStatusConfirmed, sh.Status)
	assert.Empty(t, result.Violations)
	assert.Equal(t, float64(100), result.Analytics.ShiftCoveragePercentage)
	assert.Equal(t, "optimal", result.SolverStatus)
}

func TestGenerateInfeasibleAvailability(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	// Available Saturdays only; 2024-06-03 is a Monday.
	req.Employees[0].Availability = []dto.AvailabilityWindow{{
		DayOfWeek: 5, StartTime: "09:00", EndTime: "17:00",
	}}

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, result.Shifts)
	require.Len(t, result.Violations, 1)
	v := result.Violations[0]
	assert.Equal(t, models.ViolationHard, v.Type)
	assert.Equal(t, 10, v.Severity)
	assert.Equal(t, float64(0), result.Analytics.ShiftCoveragePercentage)
}

func TestGenerateTwoTemplatesTwoDays(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.Employees = append(req.Employees, dto.Employee{
		ID: "emp-2", Name: "Bob", Role: "Cashier", MaxHoursPerWeek: 40,
	})
	req.ShiftTypes = append(req.ShiftTypes, dto.ShiftType{
		ID:            "evening",
		Name:          "Evening",
		StartTime:     "14:00",
		EndTime:       "22:00",
		RequiredRoles: []dto.RoleRequirement{{Role: "Cashier", Count: 1}},
		Duration:      8,
		IsRepeating:   true,
		RepeatPattern: "daily",
	})
	req.SchedulingPeriod.EndDate = "2024-06-04"

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Shifts, 4)
	for _, sh := range result.Shifts {
		require.Len(t, sh.AssignedEmployees, 1)
		switch sh.ShiftTypeID {
		case "morning":
			assert.Equal(t, "emp-1", sh.AssignedEmployees[0])
		case "evening":
			assert.Equal(t, "emp-2", sh.AssignedEmployees[0])
		default:
			t.Fatalf("unexpected shift type %s", sh.ShiftTypeID)
		}
	}
	assert.Equal(t, float64(100), result.Analytics.ShiftCoveragePercentage)
}

func TestGenerateIdempotentObjective(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.Employees = append(req.Employees, dto.Employee{
		ID: "emp-2", Name: "Bob", Role: "Manager", MaxHoursPerWeek: 40,
	})
	req.SchedulingPeriod.EndDate = "2024-06-07"
	req.Constraints.PrioritizeFairness = 0.8

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := svc.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.Shifts, again.Shifts)
		assert.Equal(t, first.Analytics.FairnessMetric, again.Analytics.FairnessMetric)
	}
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.ShiftTypes[0].RequiredRoles = []dto.RoleRequirement{{Role: "Surgeon", Count: 1}}

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrInvalidConfig.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Surgeon")
}

func TestGenerateAcceptsISODatetimes(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.SchedulingPeriod.StartDate = "2024-06-03T00:00:00.000Z"
	req.SchedulingPeriod.EndDate = "2024-06-04T00:00:00.000Z"
	req.SchedulingPeriod.DaysOff = []string{"2024-06-04T00:00:00.000Z"}

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	assert.Equal(t, "2024-06-03", result.Shifts[0].Date.Format("2006-01-02"))
}

func TestGenerateAcceptsZonelessDatetimes(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.SchedulingPeriod.StartDate = "2024-06-03T00:00:00"
	req.SchedulingPeriod.EndDate = "2024-06-03T00:00:00"

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
}

func TestGenerateRejectsMalformedDates(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.SchedulingPeriod.StartDate = "06/03/2024"

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidConfig.Code, apperrors.FromError(err).Code)
}

func TestGenerateRejectsInvertedPeriod(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.SchedulingPeriod.StartDate = "2024-06-10"
	req.SchedulingPeriod.EndDate = "2024-06-03"

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidConfig.Code, apperrors.FromError(err).Code)
}

func TestGenerateRejectsMalformedClock(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.ShiftTypes[0].StartTime = "9am"

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidConfig.Code, apperrors.FromError(err).Code)
}

func TestGenerateValidatesRequest(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.Employees = nil

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestGenerateZeroMaxHoursRejected(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.Constraints.MaxHoursPerEmployee = 0

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestGenerateSkipsDaysOff(t *testing.T) {
	svc := newTestService()

	req := baseRequest()
	req.SchedulingPeriod.EndDate = "2024-06-05"
	req.SchedulingPeriod.DaysOff = []string{"2024-06-04"}

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Shifts, 2)
	for _, sh := range result.Shifts {
		assert.NotEqual(t, "2024-06-04", sh.Date.Format("2006-01-02"))
	}
}
