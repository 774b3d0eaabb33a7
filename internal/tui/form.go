package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// HabitFormModel holds the add-habit form's raw field values
type HabitFormModel struct {
	Name      string
	Frequency string
	Every     string
	Period    string
	Start     string
	Reminder  string
}

// Habit converts the form values into an unsaved habit
func (fm *HabitFormModel) Habit() (models.Habit, error) {
	start, err := utils.ParseDate(strings.TrimSpace(fm.Start))
	if err != nil {
		return models.Habit{}, fmt.Errorf("invalid start date %q", fm.Start)
	}

	h := models.Habit{
		Name:      strings.TrimSpace(fm.Name),
		Frequency: constants.Frequency(fm.Frequency),
		StartDate: start,
	}
	if h.Frequency == constants.FrequencyCustom {
		n, err := strconv.Atoi(strings.TrimSpace(fm.Every))
		if err != nil {
			return models.Habit{}, errors.New("interval must be a number")
		}
		h.CustomTimes = n
		h.CustomPeriod = constants.Period(fm.Period)
	}
	if r := strings.TrimSpace(fm.Reminder); r != "" {
		h.ReminderEnabled = true
		h.ReminderTime = r
	}
	return h, nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	notCustom := func() bool { return fm.Frequency != string(constants.FrequencyCustom) }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(notBlank("habit name")),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", string(constants.FrequencyDaily)),
					huh.NewOption("Weekly (same weekday as start)", string(constants.FrequencyWeekly)),
					huh.NewOption("Monthly (same day as start)", string(constants.FrequencyMonthly)),
					huh.NewOption("Custom interval", string(constants.FrequencyCustom)),
				).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Value(&fm.Start).
				Validate(func(s string) error {
					if _, err := utils.ParseDate(strings.TrimSpace(s)); err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Every").
				Value(&fm.Every).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("enter a whole number greater than 0")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Period").
				Options(
					huh.NewOption("Days", string(constants.PeriodDay)),
					huh.NewOption("Weeks", string(constants.PeriodWeek)),
					huh.NewOption("Months", string(constants.PeriodMonth)),
				).
				Value(&fm.Period),
		).WithHideFunc(notCustom),
		huh.NewGroup(
			huh.NewInput().
				Title("Reminder time (HH:MM, optional)").
				Value(&fm.Reminder).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s != "" && !utils.ValidateTimeFormat(s) {
						return errors.New("use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
