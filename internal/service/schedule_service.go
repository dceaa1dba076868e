package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rosterly/shift-solver-api/internal/dto"
	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/schedule"
	"github.com/rosterly/shift-solver-api/internal/solver"
	"github.com/rosterly/shift-solver-api/pkg/config"
	apperrors "github.com/rosterly/shift-solver-api/pkg/errors"
)

// ScheduleService turns a scheduling configuration into a solved schedule.
// Each request builds a fresh model; no state is shared between solves.
type ScheduleService struct {
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	solverCfg config.SolverConfig
}

// NewScheduleService wires the schedule generator.
func NewScheduleService(validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, solverCfg config.SolverConfig) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		solverCfg: solverCfg,
	}
}

// Generate runs the full pipeline: validate, expand shift templates, compile
// constraints and objective, solve, project. An infeasible model is a
// successful generation whose result carries a hard violation; only invalid
// input yields an error.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (models.ScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ScheduleResult{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, err.Error())
	}

	cfg, err := parseConfig(req)
	if err != nil {
		return models.ScheduleResult{}, apperrors.Wrap(err, apperrors.ErrInvalidConfig.Code, apperrors.ErrInvalidConfig.Status, err.Error())
	}

	shifts, err := schedule.Expand(cfg.ShiftTypes, cfg.Period)
	if err != nil {
		return models.ScheduleResult{}, apperrors.Wrap(err, apperrors.ErrInvalidConfig.Code, apperrors.ErrInvalidConfig.Status, err.Error())
	}

	m := solver.NewModel()
	am := schedule.NewAssignmentModel(m, cfg.Employees, shifts)

	m.AddConstraints(schedule.CompileConstraints(am, cfg.Limits))

	obj := schedule.CompileObjective(m, am, cfg.Limits, cfg.Preferences)
	m.AddConstraints(obj.Side)
	if obj.HasTerms {
		m.Minimize(obj.Expr)
	}

	start := time.Now()
	res := solver.New(m, solver.Options{
		TimeLimit: s.solverCfg.TimeLimit,
		MaxNodes:  s.solverCfg.MaxNodes,
	}).Solve(ctx)
	elapsed := time.Since(start)

	result := schedule.Project(cfg, am, res, obj)

	s.metrics.ObserveSolve(res.Status.String(), elapsed, res.Nodes, len(shifts))
	s.logger.Info("schedule_solved",
		zap.String("status", res.Status.String()),
		zap.Duration("took", elapsed),
		zap.Int64("nodes", res.Nodes),
		zap.Int("employees", len(cfg.Employees)),
		zap.Int("shift_instances", len(shifts)),
		zap.Int64("objective", res.Objective),
	)

	return result, nil
}

// parseConfig converts the wire request into the validated domain
// configuration. It rejects malformed dates and clock times, inverted
// periods and role requirements no employee can fill.
func parseConfig(req dto.GenerateScheduleRequest) (models.SchedulingConfig, error) {
	var cfg models.SchedulingConfig

	roles := make(map[string]struct{}, len(req.Employees))
	for _, e := range req.Employees {
		for _, w := range e.Availability {
			if _, err := schedule.ClockMinutes(w.StartTime); err != nil {
				return cfg, fmt.Errorf("employee %s availability: %w", e.ID, err)
			}
			if _, err := schedule.ClockMinutes(w.EndTime); err != nil {
				return cfg, fmt.Errorf("employee %s availability: %w", e.ID, err)
			}
		}
		roles[e.Role] = struct{}{}
		cfg.Employees = append(cfg.Employees, models.Employee{
			ID:              e.ID,
			Name:            e.Name,
			Role:            e.Role,
			Skills:          e.Skills,
			MaxHoursPerWeek: e.MaxHoursPerWeek,
			Availability:    toAvailability(e.Availability),
			Preferences:     e.Preferences,
			Email:           e.Email,
		})
	}

	for _, st := range req.ShiftTypes {
		if _, err := schedule.ClockMinutes(st.StartTime); err != nil {
			return cfg, fmt.Errorf("shift type %s: %w", st.ID, err)
		}
		if _, err := schedule.ClockMinutes(st.EndTime); err != nil {
			return cfg, fmt.Errorf("shift type %s: %w", st.ID, err)
		}
		reqs := make([]models.RoleRequirement, 0, len(st.RequiredRoles))
		for _, r := range st.RequiredRoles {
			if _, ok := roles[r.Role]; !ok {
				return cfg, fmt.Errorf("shift type %s requires role %q but no employee has it", st.ID, r.Role)
			}
			reqs = append(reqs, models.RoleRequirement{Role: r.Role, Count: r.Count})
		}
		cfg.ShiftTypes = append(cfg.ShiftTypes, models.ShiftTemplate{
			ID:            st.ID,
			Name:          st.Name,
			StartTime:     st.StartTime,
			EndTime:       st.EndTime,
			RequiredRoles: reqs,
			Duration:      st.Duration,
			IsRepeating:   st.IsRepeating,
			RepeatPattern: st.RepeatPattern,
			Priority:      st.Priority,
		})
	}

	period, err := parsePeriod(req.SchedulingPeriod)
	if err != nil {
		return cfg, err
	}
	cfg.Period = period

	cfg.Limits = models.SchedulingLimits{
		MaxHoursPerEmployee:   req.Constraints.MaxHoursPerEmployee,
		MaxShiftsPerDay:       req.Constraints.MaxShiftsPerDay,
		MaxNightShiftsPerWeek: req.Constraints.MaxNightShiftsPerWeek,
		MinHoursBetweenShifts: req.Constraints.MinHoursBetweenShifts,
		PreferFixedTeams:      req.Constraints.PreferFixedTeams,
		PrioritizeFairness:    req.Constraints.PrioritizeFairness,
	}

	cfg.Preferences = models.SchedulingPreferences{
		RespectEmployeePreferences:     req.Preferences.RespectEmployeePreferences,
		MinimizeNightShifts:            req.Preferences.MinimizeNightShifts,
		SpreadWeekendShiftsFairly:      req.Preferences.SpreadWeekendShiftsFairly,
		MinimizeConsecutiveNightShifts: req.Preferences.MinimizeConsecutiveNightShifts,
		PreferenceWeight:               req.Preferences.PreferenceWeight,
	}

	return cfg, nil
}

func parsePeriod(p dto.SchedulingPeriod) (models.SchedulingPeriod, error) {
	var out models.SchedulingPeriod

	start, err := parseDate(p.StartDate)
	if err != nil {
		return out, fmt.Errorf("startDate: %w", err)
	}
	end, err := parseDate(p.EndDate)
	if err != nil {
		return out, fmt.Errorf("endDate: %w", err)
	}
	if end.Before(start) {
		return out, fmt.Errorf("endDate %s is before startDate %s", p.EndDate, p.StartDate)
	}

	daysOff, err := parseDates(p.DaysOff)
	if err != nil {
		return out, fmt.Errorf("daysOff: %w", err)
	}
	holidays, err := parseDates(p.Holidays)
	if err != nil {
		return out, fmt.Errorf("holidays: %w", err)
	}

	out = models.SchedulingPeriod{
		StartDate:                start,
		EndDate:                  end,
		DaysOff:                  daysOff,
		Holidays:                 holidays,
		MinRestTimeBetweenShifts: p.MinRestTimeBetweenShifts,
		WeekendRules: models.WeekendRules{
			RotateWeekends:      p.WeekendRules.RotateWeekends,
			AvoidBackToBack:     p.WeekendRules.AvoidBackToBack,
			MaxWeekendsPerMonth: p.WeekendRules.MaxWeekendsPerMonth,
		},
	}
	return out, nil
}

// dateLayouts are the accepted wire forms: plain calendar dates and ISO
// datetimes, with or without fractional seconds and zone. Datetimes are
// truncated to their calendar date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		// Truncate in the sender's offset, then normalize to UTC midnight.
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or an ISO datetime", raw)
}

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		t, err := parseDate(r)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func toAvailability(windows []dto.AvailabilityWindow) []models.AvailabilityWindow {
	out := make([]models.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		out = append(out, models.AvailabilityWindow{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	return out
}
