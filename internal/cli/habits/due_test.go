package habits

import (
	"strings"
	"testing"
)

func TestDueCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Frequency: "daily", Start: "2025-04-01"})
	mustRun(t, ctx, &HabitAddCmd{Name: "Review", Frequency: "weekly", Start: "2025-04-02"}) // Wednesdays
	mustRun(t, ctx, &HabitAddCmd{Name: "Rent", Frequency: "monthly", Start: "2025-01-31"})

	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: "2025-04-29"})
	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: "2025-04-30"})

	out.Reset()
	mustRun(t, ctx, &DueCmd{Date: "2025-04-30"})

	got := out.String()
	for _, want := range []string{"[x] Read  (streak 2)", "[ ] Review", "[ ] Rent", "Done: 1/3"} {
		if !strings.Contains(got, want) {
			t.Errorf("due output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	mustRun(t, ctx, &DueCmd{Date: "2025-04-29"})
	if strings.Contains(out.String(), "Review") || strings.Contains(out.String(), "Rent") {
		t.Errorf("habits not due should be hidden:\n%s", out.String())
	}

	out.Reset()
	mustRun(t, ctx, &DueCmd{Date: "2025-04-29", All: true})
	if !strings.Contains(out.String(), "[ ] Review  (not due)") {
		t.Errorf("--all should list habits that are not due:\n%s", out.String())
	}
}

func TestDueCmd_NothingDue(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Review", Frequency: "weekly", Start: "2025-04-02"})

	out.Reset()
	mustRun(t, ctx, &DueCmd{Date: "2025-04-03"})
	if !strings.Contains(out.String(), "Nothing due.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestStatsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Frequency: "daily", Start: "2025-04-01"})
	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: "2025-04-01"})
	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: "2025-04-02"})
	mustRun(t, ctx, &HabitSkipCmd{Name: "Read", Date: "2025-04-03"})
	mustRun(t, ctx, &HabitMarkCmd{Name: "Read", Date: "2025-04-10"})

	out.Reset()
	mustRun(t, ctx, &StatsCmd{Name: "Read"})
	got := out.String()
	for _, want := range []string{"Read (all time)", "Completion rate:  75%", "Longest streak:   2", "Completed days:   3 of 4 recorded"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	mustRun(t, ctx, &StatsCmd{Name: "Read", From: "2025-04-02", To: "2025-04-03"})
	got = out.String()
	for _, want := range []string{"2025-04-02 to 2025-04-03", "Completion rate:  50%", "Done vs due:      1 of 2 due days"} {
		if !strings.Contains(got, want) {
			t.Errorf("windowed stats output missing %q:\n%s", want, got)
		}
	}

	if err := (&StatsCmd{Name: "Read", From: "2025-04-05", To: "2025-04-01"}).Run(ctx); err == nil {
		t.Error("inverted range should fail")
	}
	if err := (&StatsCmd{From: "2025-04-01"}).Run(ctx); err == nil {
		t.Error("--from without a habit should fail")
	}

	out.Reset()
	mustRun(t, ctx, &StatsCmd{})
	if !strings.Contains(out.String(), "Overall completion: 75%") {
		t.Errorf("summary output:\n%s", out.String())
	}
}
