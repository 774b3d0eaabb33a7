package habits

import (
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
	Note string `help:"Optional note for this entry."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	return record(ctx, c.Name, c.Date, c.Note, true)
}

type HabitSkipCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
	Note string `help:"Optional note, e.g. why it was skipped."`
}

func (c *HabitSkipCmd) Run(ctx *cli.Context) error {
	return record(ctx, c.Name, c.Date, c.Note, false)
}

func record(ctx *cli.Context, name, date, note string, completed bool) error {
	habit, err := ctx.Tracker.Resolve(name)
	if err != nil {
		return err
	}
	day, err := ctx.Day(date)
	if err != nil {
		return err
	}

	if _, err := ctx.Tracker.Mark(habit.ID, day, completed, note); err != nil {
		return err
	}

	if completed {
		ctx.Printf("Marked %q done for %s\n", habit.Name, utils.FormatDate(day))
	} else {
		ctx.Printf("Recorded %q as not done for %s\n", habit.Name, utils.FormatDate(day))
	}
	return nil
}

type HabitUnmarkCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitUnmarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.Day(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Tracker.Unmark(habit.ID, day); err != nil {
		return err
	}
	ctx.Printf("Unmarked %q for %s\n", habit.Name, utils.FormatDate(day))
	return nil
}

// Log cells
const (
	cellDone    = "x"
	cellSkipped = "-"
	cellMissed  = "."
	cellIdle    = " "
)

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"28"`
	To    string `help:"Last day to show in YYYY-MM-DD format (default: today)."`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days <= 0 {
		days = constants.DefaultLogDays
	}
	end, err := ctx.Day(c.To)
	if err != nil {
		return err
	}
	start := utils.AddDays(end, -(days - 1))

	var selected []models.Habit
	if c.Habit != "" {
		h, err := ctx.Tracker.Resolve(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{h}
	} else {
		if selected, err = ctx.Store.GetAllHabits(false, false); err != nil {
			return err
		}
	}

	if len(selected) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	const nameWidth = 20
	ctx.Printf("Habit log %s to %s (x done, - skipped, . missed)\n\n", utils.FormatDate(start), utils.FormatDate(end))

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", nameWidth))
	for i := 0; i < days; i++ {
		d := utils.AddDays(start, i)
		if i == 0 || d.Day() == 1 || d.Weekday() == time.Monday {
			header.WriteString(d.Format("02"))
			header.WriteString(" ")
		} else {
			header.WriteString("   ")
		}
	}
	ctx.Println(strings.TrimRight(header.String(), " "))

	eval := ctx.Tracker.Evaluator()
	for _, habit := range selected {
		entries, err := ctx.Tracker.History(habit.ID, start, end)
		if err != nil {
			return err
		}
		byDay := make(map[string]models.HabitEntry, len(entries))
		for _, e := range entries {
			byDay[utils.FormatDate(e.Date)] = e
		}
		due := make(map[string]bool)
		for _, d := range eval.DueDates(habit, start, end) {
			due[utils.FormatDate(d)] = true
		}

		var row strings.Builder
		row.WriteString(cli.Truncate(habit.Name, nameWidth))
		for i := 0; i < days; i++ {
			d := utils.AddDays(start, i)
			cell := cellIdle
			if e, ok := byDay[utils.FormatDate(d)]; ok {
				cell = cellSkipped
				if e.Completed {
					cell = cellDone
				}
			} else if due[utils.FormatDate(d)] {
				cell = cellMissed
			}
			row.WriteString(" " + cell + " ")
		}
		ctx.Println(strings.TrimRight(row.String(), " "))
	}

	return nil
}
