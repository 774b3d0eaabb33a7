package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits." default:"1"`
	Show      HabitShowCmd      `cmd:"" help:"Show a habit's rule, status and stats."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Mark      HabitMarkCmd      `cmd:"" help:"Mark a habit as done for a day."`
	Skip      HabitSkipCmd      `cmd:"" help:"Record a habit as not done for a day."`
	Unmark    HabitUnmarkCmd    `cmd:"" help:"Remove the record for a day."`
	Log       HabitLogCmd       `cmd:"" help:"Show habit log (ASCII history)."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Unarchive a habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit (soft delete)."`
	Restore   HabitRestoreCmd   `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Frequency   string `help:"How often the habit recurs (daily, weekly, monthly, custom)." short:"f" default:"daily"`
	Every       int    `help:"For custom habits: the interval, counted in --period units."`
	Period      string `help:"For custom habits: day, week or month."`
	Start       string `help:"Start date in YYYY-MM-DD format (default: today)."`
	Reminder    string `help:"Reminder time in HH:MM format."`
	Color       string `help:"Display color as a hex code, e.g. #4caf50."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	start, err := ctx.Day(c.Start)
	if err != nil {
		return err
	}

	habit := models.Habit{
		Name:         c.Name,
		Description:  strings.TrimSpace(c.Description),
		Frequency:    constants.Frequency(strings.ToLower(c.Frequency)),
		CustomTimes:  c.Every,
		CustomPeriod: constants.Period(strings.ToLower(c.Period)),
		StartDate:    start,
		Color:        c.Color,
	}
	if c.Reminder != "" {
		habit.ReminderEnabled = true
		habit.ReminderTime = c.Reminder
	}

	habit, err = ctx.Tracker.AddHabit(habit)
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s, starting %s)\n", habit.Name, recurrence.Describe(habit), utils.FormatDate(habit.StartDate))
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "RULE", "START", "STATE")
	for _, h := range habits {
		t.Row(h.Name, recurrence.Describe(h), utils.FormatDate(h.StartDate), cli.HabitState(h))
	}
	ctx.Println(t.String())
	return nil
}

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Show status as of this date (default: today)."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.Day(c.Date)
	if err != nil {
		return err
	}

	st, err := ctx.Tracker.Status(habit.ID, day)
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", habit.Name)
	if habit.Description != "" {
		ctx.Printf("  %s\n", habit.Description)
	}
	ctx.Printf("  ID:          %s\n", habit.ID)
	ctx.Printf("  Rule:        %s\n", st.Rule)
	ctx.Printf("  Starts:      %s\n", utils.FormatDate(habit.StartDate))
	ctx.Printf("  State:       %s\n", cli.HabitState(habit))
	if habit.ReminderEnabled {
		ctx.Printf("  Reminder:    %s\n", habit.ReminderTime)
	}
	ctx.Printf("  %s:  %s\n", utils.FormatDate(day), describeDay(st.Due, st.Entry))
	if st.NextDue != nil {
		ctx.Printf("  Next due:    %s\n", utils.FormatDate(*st.NextDue))
	}
	if st.NextReminder != nil {
		ctx.Printf("  Next reminder: %s\n", st.NextReminder.Format("2006-01-02 15:04"))
	}
	if st.LastDone != nil {
		ctx.Printf("  Last done:   %s\n", utils.FormatDate(*st.LastDone))
	} else {
		ctx.Printf("  Last done:   never\n")
	}
	ctx.Printf("  Streak:      %d current, %d longest\n", st.Stats.CurrentStreak, st.Stats.LongestStreak)
	ctx.Printf("  Completion:  %d%% (%d/%d)\n", st.Stats.CompletionRate, st.Stats.TotalCompletions, st.Stats.TotalDays)
	return nil
}

func describeDay(due bool, entry *models.HabitEntry) string {
	var s string
	switch {
	case entry == nil:
		s = "not recorded"
	case entry.Completed:
		s = "done"
	default:
		s = "skipped"
	}
	if due {
		s += " (due)"
	}
	if entry != nil && entry.Note != "" {
		s += fmt.Sprintf(" - %s", entry.Note)
	}
	return s
}

type HabitEditCmd struct {
	Name        string `arg:"" help:"Habit name or ID."`
	Rename      string `help:"New name."`
	Description string `help:"New description."`
	Frequency   string `help:"New frequency (daily, weekly, monthly, custom)."`
	Every       int    `help:"New custom interval."`
	Period      string `help:"New custom period (day, week, month)."`
	Start       string `help:"New start date in YYYY-MM-DD format."`
	Reminder    string `help:"New reminder time in HH:MM format."`
	NoReminder  bool   `help:"Turn the reminder off."`
	Color       string `help:"New hex color."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		habit.Name = c.Rename
	}
	if c.Description != "" {
		habit.Description = strings.TrimSpace(c.Description)
	}
	if c.Frequency != "" {
		habit.Frequency = constants.Frequency(strings.ToLower(c.Frequency))
		if habit.Frequency != constants.FrequencyCustom {
			habit.CustomTimes = 0
			habit.CustomPeriod = ""
		}
	}
	if c.Every != 0 {
		habit.CustomTimes = c.Every
	}
	if c.Period != "" {
		habit.CustomPeriod = constants.Period(strings.ToLower(c.Period))
	}
	if c.Start != "" {
		if habit.StartDate, err = utils.ParseDate(c.Start); err != nil {
			return fmt.Errorf("invalid start date: %s (expected YYYY-MM-DD)", c.Start)
		}
	}
	if c.Reminder != "" {
		habit.ReminderEnabled = true
		habit.ReminderTime = c.Reminder
	}
	if c.NoReminder {
		habit.ReminderEnabled = false
		habit.ReminderTime = ""
	}
	if c.Color != "" {
		habit.Color = c.Color
	}

	habit, err = ctx.Tracker.UpdateHabit(habit)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s)\n", habit.Name, recurrence.Describe(habit))
	return nil
}
