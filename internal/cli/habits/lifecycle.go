package habits

import (
	"github.com/julianstephens/habitual/internal/cli"
)

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name or ID to archive."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitUnarchiveCmd struct {
	Name string `arg:"" help:"Habit name or ID to unarchive."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Unarchived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or ID to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.Resolve(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	ctx.Println("(This is a soft delete. Use 'habitual habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Name or ID of the deleted habit."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.RestoreHabit(c.Name)
	if err != nil {
		return err
	}
	ctx.Printf("Restored habit: %s\n", habit.Name)
	return nil
}
