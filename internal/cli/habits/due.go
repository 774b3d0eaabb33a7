package habits

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

// DueCmd lists the habits due on a day and whether each is recorded
type DueCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." short:"d"`
	All  bool   `help:"Also list active habits that are not due."`
}

func (c *DueCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Day(c.Date)
	if err != nil {
		return err
	}

	statuses, err := ctx.Tracker.Today(day)
	if err != nil {
		return err
	}

	ctx.Printf("Habits for %s:\n\n", utils.FormatDate(day))
	due, done := 0, 0
	for _, st := range statuses {
		if !st.Due && !c.All {
			continue
		}
		mark := "[ ]"
		switch {
		case st.Done():
			mark = "[x]"
		case st.Skipped():
			mark = "[-]"
		}
		line := fmt.Sprintf("%s %s", mark, st.Habit.Name)
		if st.Due {
			due++
			if st.Done() {
				done++
			}
			if st.Stats.CurrentStreak > 0 {
				line += fmt.Sprintf("  (streak %d)", st.Stats.CurrentStreak)
			}
		} else {
			line += "  (not due)"
		}
		ctx.Println(line)
	}

	if due == 0 {
		ctx.Println("Nothing due.")
		return nil
	}
	ctx.Printf("\nDone: %d/%d\n", done, due)
	return nil
}

// StatsCmd prints completion stats for one habit or for all of them
type StatsCmd struct {
	Name string `arg:"" optional:"" help:"Habit name or ID (default: all active habits)."`
	From string `help:"Only count entries on or after this date (YYYY-MM-DD)."`
	To   string `help:"Only count entries on or before this date (YYYY-MM-DD)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	if c.Name != "" {
		return c.single(ctx, today)
	}
	if c.From != "" || c.To != "" {
		return fmt.Errorf("--from and --to require a habit name")
	}

	statuses, err := ctx.Tracker.Today(today)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	overall, err := ctx.Tracker.Overall(today)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("HABIT", "RATE", "CURRENT", "LONGEST", "DONE")
	for _, st := range statuses {
		s := st.Stats
		t.Row(st.Habit.Name,
			fmt.Sprintf("%d%%", s.CompletionRate),
			fmt.Sprint(s.CurrentStreak),
			fmt.Sprint(s.LongestStreak),
			fmt.Sprintf("%d/%d", s.TotalCompletions, s.TotalDays))
	}
	ctx.Println(t.String())
	ctx.Printf("Overall completion: %d%%\n", overall)
	return nil
}

func (c *StatsCmd) single(ctx *cli.Context, today time.Time) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}

	var (
		stats    models.HabitStats
		progress *tracker.Progress
		label    = "all time"
	)
	if c.From == "" && c.To == "" {
		stats, err = ctx.Tracker.Stats(habit.ID, today)
	} else {
		from, to := habit.StartDate, today
		if c.From != "" {
			if from, err = utils.ParseDate(c.From); err != nil {
				return fmt.Errorf("invalid --from date: %s (expected YYYY-MM-DD)", c.From)
			}
		}
		if c.To != "" {
			if to, err = utils.ParseDate(c.To); err != nil {
				return fmt.Errorf("invalid --to date: %s (expected YYYY-MM-DD)", c.To)
			}
		}
		if stats, err = ctx.Tracker.StatsWindow(habit.ID, from, to, today); err != nil {
			return err
		}
		p, err := ctx.Tracker.Progress(habit.ID, from, to)
		if err != nil {
			return err
		}
		progress = &p
		label = fmt.Sprintf("%s to %s", utils.FormatDate(from), utils.FormatDate(to))
	}
	if err != nil {
		return err
	}

	ctx.Printf("%s (%s)\n", habit.Name, label)
	ctx.Printf("  Completion rate:  %d%%\n", stats.CompletionRate)
	ctx.Printf("  Current streak:   %d\n", stats.CurrentStreak)
	ctx.Printf("  Longest streak:   %d\n", stats.LongestStreak)
	ctx.Printf("  Completed days:   %d of %d recorded\n", stats.TotalCompletions, stats.TotalDays)
	if progress != nil {
		ctx.Printf("  Done vs due:      %d of %d due days\n", progress.Done, progress.Due)
	}
	return nil
}
