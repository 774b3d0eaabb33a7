// Package storagetest is a behaviour suite every storage.Provider must pass.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

// Run exercises p, which must be initialized and empty
func Run(t *testing.T, p storage.Provider) {
	t.Run("Habits", func(t *testing.T) { testHabits(t, p) })
	t.Run("SoftDelete", func(t *testing.T) { testSoftDelete(t, p) })
	t.Run("Entries", func(t *testing.T) { testEntries(t, p) })
	t.Run("EntryUpsert", func(t *testing.T) { testEntryUpsert(t, p) })
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// NewHabit returns a valid habit with a fresh ID
func NewHabit(name string, start time.Time) models.Habit {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Frequency: constants.FrequencyDaily,
		StartDate: start,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEntry returns an entry for habitID on d with a fresh ID
func NewEntry(habitID string, d time.Time, completed bool) models.HabitEntry {
	now := time.Now().UTC().Truncate(time.Second)
	return models.HabitEntry{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Date:      d,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testHabits(t *testing.T, p storage.Provider) {
	h := NewHabit("Stretch", day(t, "2025-01-31"))
	h.Description = "ten minutes"
	h.Frequency = constants.FrequencyCustom
	h.CustomTimes = 2
	h.CustomPeriod = constants.PeriodWeek
	h.ReminderEnabled = true
	h.ReminderTime = "07:15"
	h.Color = "#ff8800"

	if err := p.AddHabit(h); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	got, err := p.GetHabit(h.ID)
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != h.Name || got.Description != h.Description || got.Frequency != h.Frequency ||
		got.CustomTimes != 2 || got.CustomPeriod != constants.PeriodWeek ||
		!got.ReminderEnabled || got.ReminderTime != "07:15" || got.Color != "#ff8800" {
		t.Errorf("GetHabit round trip mismatch: %+v", got)
	}
	if !got.StartDate.Equal(h.StartDate) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, h.StartDate)
	}
	if !got.CreatedAt.Equal(h.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, h.CreatedAt)
	}

	byName, err := p.GetHabitByName("Stretch")
	if err != nil || byName.ID != h.ID {
		t.Errorf("GetHabitByName = %+v, %v", byName, err)
	}

	if _, err := p.GetHabit("missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetHabit(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := p.GetHabitByName("missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetHabitByName(missing) error = %v, want ErrNotFound", err)
	}

	got.Name = "Stretch more"
	got.CustomTimes = 3
	if err := p.UpdateHabit(got); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	updated, err := p.GetHabit(h.ID)
	if err != nil {
		t.Fatalf("GetHabit after update failed: %v", err)
	}
	if updated.Name != "Stretch more" || updated.CustomTimes != 3 {
		t.Errorf("update not persisted: %+v", updated)
	}

	if err := p.ArchiveHabit(h.ID); err != nil {
		t.Fatalf("ArchiveHabit failed: %v", err)
	}
	if err := p.ArchiveHabit(h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second ArchiveHabit error = %v, want ErrNotFound", err)
	}
	archived, err := p.GetHabit(h.ID)
	if err != nil || archived.ArchivedAt == nil {
		t.Errorf("archived habit should still load with ArchivedAt set: %+v, %v", archived, err)
	}

	active, err := p.GetAllHabits(false, false)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if containsHabit(active, h.ID) {
		t.Error("archived habit listed without includeArchived")
	}
	all, err := p.GetAllHabits(true, false)
	if err != nil {
		t.Fatalf("GetAllHabits(includeArchived) failed: %v", err)
	}
	if !containsHabit(all, h.ID) {
		t.Error("archived habit missing with includeArchived")
	}

	if err := p.UnarchiveHabit(h.ID); err != nil {
		t.Fatalf("UnarchiveHabit failed: %v", err)
	}
	if err := p.UnarchiveHabit(h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second UnarchiveHabit error = %v, want ErrNotFound", err)
	}
}

func testSoftDelete(t *testing.T, p storage.Provider) {
	h := NewHabit("Floss", day(t, "2025-01-01"))
	if err := p.AddHabit(h); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	if err := p.DeleteHabit(h.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, err := p.GetHabit(h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("deleted habit should not load, got %v", err)
	}
	if err := p.DeleteHabit(h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second DeleteHabit error = %v, want ErrNotFound", err)
	}

	live, err := p.GetAllHabits(true, false)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if containsHabit(live, h.ID) {
		t.Error("deleted habit listed without includeDeleted")
	}
	withDeleted, err := p.GetAllHabits(true, true)
	if err != nil {
		t.Fatalf("GetAllHabits(includeDeleted) failed: %v", err)
	}
	if !containsHabit(withDeleted, h.ID) {
		t.Error("deleted habit missing with includeDeleted")
	}

	if err := p.RestoreHabit(h.ID); err != nil {
		t.Fatalf("RestoreHabit failed: %v", err)
	}
	if _, err := p.GetHabit(h.ID); err != nil {
		t.Errorf("restored habit should load: %v", err)
	}
	if err := p.RestoreHabit(h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second RestoreHabit error = %v, want ErrNotFound", err)
	}
}

func testEntries(t *testing.T, p storage.Provider) {
	h := NewHabit("Walk", day(t, "2025-03-01"))
	if err := p.AddHabit(h); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	days := []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-05"}
	for i, d := range days {
		e := NewEntry(h.ID, day(t, d), i != 2)
		if err := p.AddHabitEntry(e); err != nil {
			t.Fatalf("AddHabitEntry(%s) failed: %v", d, err)
		}
	}

	e, err := p.GetHabitEntry(h.ID, day(t, "2025-03-03"))
	if err != nil {
		t.Fatalf("GetHabitEntry failed: %v", err)
	}
	if e.Completed {
		t.Error("2025-03-03 should be an explicit incomplete entry")
	}
	if utils.FormatDate(e.Date) != "2025-03-03" {
		t.Errorf("entry date = %s", utils.FormatDate(e.Date))
	}

	// time of day is ignored on lookup
	if _, err := p.GetHabitEntry(h.ID, day(t, "2025-03-03").Add(15*time.Hour)); err != nil {
		t.Errorf("GetHabitEntry with time of day failed: %v", err)
	}
	if _, err := p.GetHabitEntry(h.ID, day(t, "2025-03-04")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetHabitEntry(no entry) error = %v, want ErrNotFound", err)
	}

	ranged, err := p.GetHabitEntriesForHabit(h.ID, day(t, "2025-03-02"), day(t, "2025-03-05"))
	if err != nil {
		t.Fatalf("GetHabitEntriesForHabit failed: %v", err)
	}
	if len(ranged) != 3 {
		t.Fatalf("expected 3 entries in range, got %d", len(ranged))
	}
	if utils.FormatDate(ranged[0].Date) != "2025-03-05" {
		t.Errorf("range should be newest first, got %s first", utils.FormatDate(ranged[0].Date))
	}

	forDay, err := p.GetHabitEntriesForDay(day(t, "2025-03-01"))
	if err != nil {
		t.Fatalf("GetHabitEntriesForDay failed: %v", err)
	}
	if len(forDay) != 1 || forDay[0].HabitID != h.ID {
		t.Errorf("GetHabitEntriesForDay = %+v", forDay)
	}

	all, err := p.GetAllHabitEntriesForHabit(h.ID)
	if err != nil {
		t.Fatalf("GetAllHabitEntriesForHabit failed: %v", err)
	}
	if len(all) != len(days) {
		t.Errorf("expected %d entries, got %d", len(days), len(all))
	}

	target := all[0]
	if err := p.DeleteHabitEntry(target.ID); err != nil {
		t.Fatalf("DeleteHabitEntry failed: %v", err)
	}
	if err := p.DeleteHabitEntry(target.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second DeleteHabitEntry error = %v, want ErrNotFound", err)
	}
	live, err := p.GetAllHabitEntriesForHabit(h.ID)
	if err != nil {
		t.Fatalf("GetAllHabitEntriesForHabit failed: %v", err)
	}
	if len(live) != len(days)-1 {
		t.Errorf("deleted entry still listed: %d entries", len(live))
	}

	everything, err := p.GetAllHabitEntries()
	if err != nil {
		t.Fatalf("GetAllHabitEntries failed: %v", err)
	}
	found := false
	for _, e := range everything {
		if e.ID == target.ID {
			found = e.DeletedAt != nil
		}
	}
	if !found {
		t.Error("GetAllHabitEntries should include the soft-deleted entry")
	}

	if err := p.RestoreHabitEntry(target.ID); err != nil {
		t.Fatalf("RestoreHabitEntry failed: %v", err)
	}
	if err := p.RestoreHabitEntry(target.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second RestoreHabitEntry error = %v, want ErrNotFound", err)
	}
}

func testEntryUpsert(t *testing.T, p storage.Provider) {
	h := NewHabit("Meditate", day(t, "2025-04-01"))
	if err := p.AddHabit(h); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	d := day(t, "2025-04-02")
	first := NewEntry(h.ID, d, false)
	if err := p.AddHabitEntry(first); err != nil {
		t.Fatalf("AddHabitEntry failed: %v", err)
	}

	second := NewEntry(h.ID, d, true)
	second.Note = "done late"
	if err := p.AddHabitEntry(second); err != nil {
		t.Fatalf("second AddHabitEntry failed: %v", err)
	}

	entries, err := p.GetAllHabitEntriesForHabit(h.ID)
	if err != nil {
		t.Fatalf("GetAllHabitEntriesForHabit failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry per day, got %d", len(entries))
	}
	if !entries[0].Completed || entries[0].Note != "done late" {
		t.Errorf("upsert did not replace the entry: %+v", entries[0])
	}
	if entries[0].ID != first.ID {
		t.Errorf("upsert should keep the original ID %s, got %s", first.ID, entries[0].ID)
	}

	// a soft-deleted entry is revived by the next write for its day
	if err := p.DeleteHabitEntry(first.ID); err != nil {
		t.Fatalf("DeleteHabitEntry failed: %v", err)
	}
	if err := p.AddHabitEntry(NewEntry(h.ID, d, true)); err != nil {
		t.Fatalf("AddHabitEntry after delete failed: %v", err)
	}
	revived, err := p.GetHabitEntry(h.ID, d)
	if err != nil {
		t.Fatalf("GetHabitEntry after revive failed: %v", err)
	}
	if revived.DeletedAt != nil || !revived.Completed {
		t.Errorf("entry not revived: %+v", revived)
	}
}

func containsHabit(habits []models.Habit, id string) bool {
	for _, h := range habits {
		if h.ID == id {
			return true
		}
	}
	return false
}
