package schedule

import (
	"fmt"

	"github.com/teambition/rrule-go"

	"github.com/rosterly/shift-solver-api/internal/models"
)

// Expand materializes concrete shift instances from repeating templates over
// the scheduling period. Instances are emitted date-major, then in template
// order, so instance IDs are stable across runs of the same configuration.
//
// Non-repeating templates yield no instances. Dates listed as days off or
// holidays are skipped entirely.
func Expand(templates []models.ShiftTemplate, period models.SchedulingPeriod) ([]models.ShiftInstance, error) {
	excluded := make(map[string]struct{}, len(period.DaysOff)+len(period.Holidays))
	for _, d := range period.DaysOff {
		excluded[dayKey(d)] = struct{}{}
	}
	for _, d := range period.Holidays {
		excluded[dayKey(d)] = struct{}{}
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: period.StartDate,
		Until:   period.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("expanding scheduling period: %w", err)
	}

	instances := make([]models.ShiftInstance, 0, len(templates)*8)
	seq := 0
	for _, date := range rule.All() {
		if _, skip := excluded[dayKey(date)]; skip {
			continue
		}
		for _, tmpl := range templates {
			if !tmpl.IsRepeating {
				continue
			}
			startMin, err := ClockMinutes(tmpl.StartTime)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", tmpl.ID, err)
			}
			endMin, err := ClockMinutes(tmpl.EndTime)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", tmpl.ID, err)
			}
			roles := make([]models.RoleRequirement, len(tmpl.RequiredRoles))
			copy(roles, tmpl.RequiredRoles)
			instances = append(instances, models.ShiftInstance{
				ID:              fmt.Sprintf("shift-%d", seq),
				TemplateID:      tmpl.ID,
				Date:            date,
				StartTime:       tmpl.StartTime,
				EndTime:         tmpl.EndTime,
				StartMinutes:    startMin,
				EndMinutes:      endMin,
				DurationMinutes: int(tmpl.Duration * 60),
				RequiredRoles:   roles,
				Night:           isNightShift(startMin, endMin),
				Weekend:         isWeekend(date),
				WeekKey:         WeekKeyFor(date),
			})
			seq++
		}
	}
	return instances, nil
}
