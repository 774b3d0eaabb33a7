package storage

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// Provider is implemented by every storage backend. Lookups that find
// nothing return an error wrapping errors.ErrNotFound. Days are calendar
// dates; any time-of-day component is ignored.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Habit Entries
	// AddHabitEntry upserts: a second entry for the same habit and day
	// replaces the first, reviving it if it was soft-deleted.
	AddHabitEntry(models.HabitEntry) error
	GetHabitEntry(habitID string, day time.Time) (models.HabitEntry, error)
	GetHabitEntriesForDay(day time.Time) ([]models.HabitEntry, error)
	GetHabitEntriesForHabit(habitID string, from, to time.Time) ([]models.HabitEntry, error)
	GetAllHabitEntriesForHabit(habitID string) ([]models.HabitEntry, error)
	GetAllHabitEntries() ([]models.HabitEntry, error)
	UpdateHabitEntry(models.HabitEntry) error
	DeleteHabitEntry(id string) error
	RestoreHabitEntry(id string) error

	// Utils
	GetConfigPath() string
}
