package recurrence

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Describe formats a habit's recurrence rule into a human-readable string
func Describe(habit models.Habit) string {
	switch habit.Frequency {
	case constants.FrequencyDaily:
		return "daily"
	case constants.FrequencyWeekly:
		return fmt.Sprintf("weekly on %s", habit.StartDate.Weekday().String()[:3])
	case constants.FrequencyMonthly:
		return fmt.Sprintf("monthly on day %d", habit.StartDate.Day())
	case constants.FrequencyCustom:
		if habit.CustomTimes <= 0 {
			return "custom (invalid)"
		}
		switch habit.CustomPeriod {
		case constants.PeriodDay, constants.PeriodWeek, constants.PeriodMonth:
		default:
			return "custom (invalid)"
		}
		if habit.CustomTimes == 1 {
			return fmt.Sprintf("every %s", habit.CustomPeriod)
		}
		return fmt.Sprintf("every %d %ss", habit.CustomTimes, habit.CustomPeriod)
	default:
		return "unknown"
	}
}

// NextReminder returns the next instant at or after now when habit's
// reminder should fire: the reminder time on the next due day. A reminder
// time already passed today rolls forward to the next due day. ok is false
// when reminders are disabled, the time is malformed, or no due day exists.
func (e Evaluator) NextReminder(habit models.Habit, now time.Time, loc *time.Location) (time.Time, bool) {
	if !habit.ReminderEnabled || habit.ReminderTime == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	day := utils.DateOnly(now)
	for attempt := 0; attempt < 2; attempt++ {
		due, ok := e.NextDueDate(habit, day)
		if !ok {
			return time.Time{}, false
		}
		at, err := utils.CombineDateAndTime(due, habit.ReminderTime, loc)
		if err != nil {
			return time.Time{}, false
		}
		if at.After(now) {
			return at, true
		}
		// today's reminder already went by
		day = due.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}
