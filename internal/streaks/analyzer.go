// Package streaks derives completion statistics from a habit's entry history.
//
// All functions are pure: they never read the clock or storage, and they
// never modify the slices passed to them.
package streaks

import (
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Analyze computes completion rate, current streak and longest streak for
// one habit's entries as of today.
func Analyze(entries []models.HabitEntry, today time.Time) models.HabitStats {
	completed := countCompleted(entries)
	return models.HabitStats{
		CompletionRate:   rate(completed, len(entries)),
		CurrentStreak:    CurrentStreak(entries, today),
		LongestStreak:    LongestStreak(entries),
		TotalCompletions: completed,
		TotalDays:        len(entries),
	}
}

// CompletionRate returns the floored percentage of entries marked completed,
// or 0 for an empty history.
func CompletionRate(entries []models.HabitEntry) int {
	return rate(countCompleted(entries), len(entries))
}

// CurrentStreak counts consecutive completed days ending at or before today.
//
// A day with no entry is tolerated only while it is strictly adjacent to the
// cursor; a larger gap ends the streak. An explicit incomplete entry ends the
// streak immediately. Entries dated after the cursor are ignored, which
// covers future-dated entries and duplicates of an already counted day.
func CurrentStreak(entries []models.HabitEntry, today time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	sorted := sortedByDate(entries)
	cursor := utils.DateOnly(today)
	streak := 0

	for i := len(sorted) - 1; i >= 0; i-- {
		entry := sorted[i]
		gap := utils.DaysBetween(entry.Date, cursor)
		if gap < 0 {
			continue
		}
		if gap > 1 {
			break
		}
		if !entry.Completed {
			break
		}
		streak++
		cursor = utils.AddDays(entry.Date, -1)
	}

	return streak
}

// LongestStreak returns the longest run of consecutive completed days in
// the history, regardless of today. Several completed entries on one date
// count once.
func LongestStreak(entries []models.HabitEntry) int {
	longest, run := 0, 0
	var last time.Time

	for _, entry := range sortedByDate(entries) {
		if !entry.Completed {
			continue
		}

		if run == 0 {
			run = 1
		} else {
			switch gap := utils.DaysBetween(last, entry.Date); {
			case gap == 1:
				run++
			case gap > 1:
				run = 1
			}
		}

		last = entry.Date
		if run > longest {
			longest = run
		}
	}

	return longest
}

// CompletedBetween counts completed entries dated within [from, to].
func CompletedBetween(entries []models.HabitEntry, from, to time.Time) int {
	n := 0
	for _, entry := range Window(entries, from, to) {
		if entry.Completed {
			n++
		}
	}
	return n
}

// Window returns the entries dated within [from, to], in input order.
func Window(entries []models.HabitEntry, from, to time.Time) []models.HabitEntry {
	from, to = utils.DateOnly(from), utils.DateOnly(to)

	var out []models.HabitEntry
	for _, entry := range entries {
		d := utils.DateOnly(entry.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// LastCompleted returns the most recent completed entry.
func LastCompleted(entries []models.HabitEntry) (models.HabitEntry, bool) {
	var (
		last  models.HabitEntry
		found bool
	)
	for _, entry := range entries {
		if !entry.Completed {
			continue
		}
		if !found || utils.DateOnly(entry.Date).After(utils.DateOnly(last.Date)) {
			last, found = entry, true
		}
	}
	return last, found
}

// Overall returns the completion rate across every habit's entries pooled
// together.
func Overall(entriesByHabit map[string][]models.HabitEntry) int {
	completed, total := 0, 0
	for _, entries := range entriesByHabit {
		completed += countCompleted(entries)
		total += len(entries)
	}
	return rate(completed, total)
}

func countCompleted(entries []models.HabitEntry) int {
	n := 0
	for _, entry := range entries {
		if entry.Completed {
			n++
		}
	}
	return n
}

func rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// sortedByDate returns a date-normalised copy of entries in ascending date order.
func sortedByDate(entries []models.HabitEntry) []models.HabitEntry {
	sorted := make([]models.HabitEntry, len(entries))
	copy(sorted, entries)
	for i := range sorted {
		sorted[i].Date = utils.DateOnly(sorted[i].Date)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
