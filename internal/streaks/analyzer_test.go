package streaks

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

var today = time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC)

// e builds an entry daysAgo days before today.
func e(daysAgo int, completed bool) models.HabitEntry {
	return models.HabitEntry{
		HabitID:   "h1",
		Date:      today.AddDate(0, 0, -daysAgo),
		Completed: completed,
	}
}

func on(t *testing.T, day string, completed bool) models.HabitEntry {
	t.Helper()
	d, err := utils.ParseDate(day)
	if err != nil {
		t.Fatalf("bad test date %q: %v", day, err)
	}
	return models.HabitEntry{HabitID: "h1", Date: d, Completed: completed}
}

func TestAnalyze_Empty(t *testing.T) {
	stats := Analyze(nil, today)
	if stats != (models.HabitStats{}) {
		t.Errorf("Analyze(nil) = %+v, want zero stats", stats)
	}

	stats = Analyze([]models.HabitEntry{}, today)
	if stats.CompletionRate != 0 || stats.CurrentStreak != 0 || stats.LongestStreak != 0 {
		t.Errorf("Analyze([]) = %+v, want zero stats", stats)
	}
}

func TestAnalyze(t *testing.T) {
	entries := []models.HabitEntry{
		e(0, true),
		e(1, true),
		e(2, false),
		e(3, true),
		e(4, true),
		e(5, true),
		e(6, true),
	}

	stats := Analyze(entries, today)
	want := models.HabitStats{
		CompletionRate:   85, // 6/7 floored
		CurrentStreak:    2,
		LongestStreak:    4,
		TotalCompletions: 6,
		TotalDays:        7,
	}
	if stats != want {
		t.Errorf("Analyze() = %+v, want %+v", stats, want)
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{"empty", nil, 0},
		{"all done", []models.HabitEntry{e(0, true), e(1, true)}, 100},
		{"none done", []models.HabitEntry{e(0, false), e(1, false)}, 0},
		{"three of four", []models.HabitEntry{e(0, true), e(9, true), e(3, false), e(40, true)}, 75},
		{"floors one third", []models.HabitEntry{e(0, true), e(1, false), e(2, false)}, 33},
		{"floors two thirds", []models.HabitEntry{e(0, true), e(1, true), e(2, false)}, 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(tt.entries); got != tt.want {
				t.Errorf("CompletionRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

// The current streak treats "no record" and "recorded as not done"
// differently: a missing day is tolerated while strictly adjacent to the
// cursor, an explicit incomplete entry always ends the streak.
func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{"empty", nil, 0},
		{"three consecutive ending today", []models.HabitEntry{e(0, true), e(1, true), e(2, true)}, 3},
		{"input order does not matter", []models.HabitEntry{e(2, true), e(0, true), e(1, true)}, 3},
		{"explicit incomplete yesterday", []models.HabitEntry{e(0, true), e(1, false), e(2, true)}, 1},
		{"explicit incomplete today", []models.HabitEntry{e(0, false), e(1, true), e(2, true)}, 0},
		{"gap of two days", []models.HabitEntry{e(0, true), e(3, true)}, 1},
		{"latest entry is yesterday", []models.HabitEntry{e(1, true), e(2, true)}, 2},
		{"latest entry two days ago", []models.HabitEntry{e(2, true), e(3, true)}, 0},
		{"single missing day between records", []models.HabitEntry{e(0, true), e(2, true), e(3, true)}, 3},
		{"incomplete after missing day", []models.HabitEntry{e(0, true), e(2, false), e(3, true)}, 1},
		{"future entry ignored", []models.HabitEntry{e(-1, true), e(0, true), e(1, true)}, 2},
		{"future incomplete ignored", []models.HabitEntry{e(-2, false), e(0, true)}, 1},
		{"duplicate day counted once", []models.HabitEntry{e(0, true), e(0, true), e(1, true)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.entries, today); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak_TodayWithTimeOfDay(t *testing.T) {
	entries := []models.HabitEntry{e(0, true), e(1, true)}
	evening := today.Add(21 * time.Hour)
	if got := CurrentStreak(entries, evening); got != 2 {
		t.Errorf("CurrentStreak() at 21:00 = %d, want 2", got)
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{"empty", nil, 0},
		{"no completions", []models.HabitEntry{on(t, "2025-04-21", false)}, 0},
		{"single", []models.HabitEntry{on(t, "2025-04-21", true)}, 1},
		{
			"three then gap then two",
			[]models.HabitEntry{
				on(t, "2025-04-21", true),
				on(t, "2025-04-22", true),
				on(t, "2025-04-23", true),
				on(t, "2025-04-26", true),
				on(t, "2025-04-27", true),
			},
			3,
		},
		{
			"later run is longer",
			[]models.HabitEntry{
				on(t, "2025-04-01", true),
				on(t, "2025-04-10", true),
				on(t, "2025-04-11", true),
				on(t, "2025-04-12", true),
			},
			3,
		},
		{
			"incomplete entry splits run",
			[]models.HabitEntry{
				on(t, "2025-04-21", true),
				on(t, "2025-04-22", false),
				on(t, "2025-04-23", true),
			},
			1,
		},
		{
			"duplicates do not inflate",
			[]models.HabitEntry{
				on(t, "2025-04-21", true),
				on(t, "2025-04-21", true),
				on(t, "2025-04-22", true),
				on(t, "2025-04-22", true),
				on(t, "2025-04-22", true),
			},
			2,
		},
		{
			"unsorted input",
			[]models.HabitEntry{
				on(t, "2025-04-23", true),
				on(t, "2025-04-21", true),
				on(t, "2025-04-22", true),
			},
			3,
		},
		{
			"across month and year",
			[]models.HabitEntry{
				on(t, "2024-12-30", true),
				on(t, "2024-12-31", true),
				on(t, "2025-01-01", true),
			},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.entries); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak_IndependentOfToday(t *testing.T) {
	entries := []models.HabitEntry{e(30, true), e(31, true), e(32, true)}
	stats := Analyze(entries, today)
	if stats.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", stats.LongestStreak)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", stats.CurrentStreak)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	entries := []models.HabitEntry{e(2, true), e(0, true), e(1, false)}
	before := make([]models.HabitEntry, len(entries))
	copy(before, entries)

	Analyze(entries, today)

	for i := range entries {
		if !entries[i].Date.Equal(before[i].Date) || entries[i].Completed != before[i].Completed {
			t.Fatalf("entry %d changed: %+v -> %+v", i, before[i], entries[i])
		}
	}
}

func TestWindowAndCompletedBetween(t *testing.T) {
	entries := []models.HabitEntry{
		on(t, "2025-04-01", true),
		on(t, "2025-04-10", true),
		on(t, "2025-04-11", false),
		on(t, "2025-04-20", true),
	}
	from, _ := utils.ParseDate("2025-04-10")
	to, _ := utils.ParseDate("2025-04-20")

	window := Window(entries, from, to)
	if len(window) != 3 {
		t.Fatalf("Window() returned %d entries, want 3", len(window))
	}
	if got := CompletedBetween(entries, from, to); got != 2 {
		t.Errorf("CompletedBetween() = %d, want 2", got)
	}
	if got := CompletedBetween(entries, to, from); got != 0 {
		t.Errorf("CompletedBetween() with inverted range = %d, want 0", got)
	}
}

func TestLastCompleted(t *testing.T) {
	if _, ok := LastCompleted(nil); ok {
		t.Error("LastCompleted(nil) should report not found")
	}

	entries := []models.HabitEntry{
		on(t, "2025-04-10", true),
		on(t, "2025-04-20", false),
		on(t, "2025-04-15", true),
	}
	last, ok := LastCompleted(entries)
	if !ok || utils.FormatDate(last.Date) != "2025-04-15" {
		t.Errorf("LastCompleted() = %s, %v; want 2025-04-15", utils.FormatDate(last.Date), ok)
	}
}

func TestOverall(t *testing.T) {
	if got := Overall(nil); got != 0 {
		t.Errorf("Overall(nil) = %d, want 0", got)
	}

	byHabit := map[string][]models.HabitEntry{
		"a": {e(0, true), e(1, true)},
		"b": {e(0, false), e(1, true), e(2, false)},
		"c": {},
	}
	// 3 of 5 = 60
	if got := Overall(byHabit); got != 60 {
		t.Errorf("Overall() = %d, want 60", got)
	}
}
