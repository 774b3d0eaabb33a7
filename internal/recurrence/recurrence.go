// Package recurrence decides whether a habit is due on a given calendar date.
//
// Every function here is a pure function of its arguments: "today" is always
// passed in, never read from the clock.
package recurrence

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Evaluator evaluates habit recurrence rules. The zero value uses the
// clamp month-end policy.
type Evaluator struct {
	MonthEnd constants.MonthEndPolicy
}

// New returns an Evaluator with the given month-end policy. An unknown
// policy falls back to clamp.
func New(policy constants.MonthEndPolicy) Evaluator {
	if policy != constants.MonthEndSkip {
		policy = constants.MonthEndClamp
	}
	return Evaluator{MonthEnd: policy}
}

var defaultEvaluator = New(constants.MonthEndClamp)

// IsDueOn reports whether habit is due on today using the default clamp policy.
func IsDueOn(habit models.Habit, today time.Time) bool {
	return defaultEvaluator.IsDueOn(habit, today)
}

// IsDueOn reports whether habit's recurrence rule fires on today.
// Malformed custom rules are never due; they are not an error.
func (e Evaluator) IsDueOn(habit models.Habit, today time.Time) bool {
	start := utils.DateOnly(habit.StartDate)
	today = utils.DateOnly(today)

	if today.Before(start) {
		return false
	}

	switch habit.Frequency {
	case constants.FrequencyDaily:
		return true
	case constants.FrequencyWeekly:
		return utils.DaysBetween(start, today)%7 == 0
	case constants.FrequencyMonthly:
		return e.onAnchorDay(start, today)
	case constants.FrequencyCustom:
		return e.customDue(habit, start, today)
	default:
		return false
	}
}

func (e Evaluator) customDue(habit models.Habit, start, today time.Time) bool {
	n := habit.CustomTimes
	if n <= 0 {
		return false
	}

	switch habit.CustomPeriod {
	case constants.PeriodDay:
		return utils.DaysBetween(start, today)%n == 0
	case constants.PeriodWeek:
		return utils.DaysBetween(start, today)%(7*n) == 0
	case constants.PeriodMonth:
		if !e.onAnchorDay(start, today) {
			return false
		}
		return utils.MonthsBetween(start, today)%n == 0
	default:
		return false
	}
}

// onAnchorDay reports whether today is the start date's day of month. Under
// the clamp policy a start day missing from today's month maps to that
// month's last day; under skip such months never match.
func (e Evaluator) onAnchorDay(start, today time.Time) bool {
	if e.MonthEnd == constants.MonthEndSkip {
		return today.Day() == start.Day()
	}
	return today.Day() == utils.ClampDay(start.Day(), today.Year(), today.Month())
}

// NextDueDate returns the first date on or after from on which habit is due.
// The search is bounded by constants.NextDueHorizonDays; ok is false when no
// due date exists within it, which is always the case for malformed rules.
func (e Evaluator) NextDueDate(habit models.Habit, from time.Time) (time.Time, bool) {
	day := utils.DateOnly(from)
	if start := utils.DateOnly(habit.StartDate); day.Before(start) {
		day = start
	}

	for i := 0; i < constants.NextDueHorizonDays; i++ {
		if e.IsDueOn(habit, day) {
			return day, true
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// DueDates returns every date in [from, to] on which habit is due.
func (e Evaluator) DueDates(habit models.Habit, from, to time.Time) []time.Time {
	from, to = utils.DateOnly(from), utils.DateOnly(to)

	var dates []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if e.IsDueOn(habit, day) {
			dates = append(dates, day)
		}
	}
	return dates
}
