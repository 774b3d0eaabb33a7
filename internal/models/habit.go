package models

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID              string              `json:"id"`
	Name            string              `json:"name" validate:"required,max=120"`
	Description     string              `json:"description,omitempty"`
	Frequency       constants.Frequency `json:"frequency" validate:"required,oneof=daily weekly monthly custom"`
	CustomTimes     int                 `json:"custom_times,omitempty" validate:"required_if=Frequency custom,omitempty,gt=0"`
	CustomPeriod    constants.Period    `json:"custom_period,omitempty" validate:"required_if=Frequency custom,omitempty,oneof=day week month"`
	StartDate       time.Time           `json:"start_date"` // date only, UTC midnight
	ReminderEnabled bool                `json:"reminder_enabled"`
	ReminderTime    string              `json:"reminder_time,omitempty" validate:"required_if=ReminderEnabled true,omitempty,datetime=15:04"` // HH:MM format
	Color           string              `json:"color,omitempty" validate:"omitempty,hexcolor"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	ArchivedAt      *time.Time          `json:"archived_at,omitempty"`
	DeletedAt       *time.Time          `json:"deleted_at,omitempty"`
}

// IsActive reports whether the habit is neither archived nor deleted
func (h Habit) IsActive() bool {
	return h.ArchivedAt == nil && h.DeletedAt == nil
}

// HabitEntry represents a single day's record of a habit. An entry with
// Completed=false is an explicit "not done", which is different from having
// no entry for the day.
type HabitEntry struct {
	ID        string     `json:"id"`
	HabitID   string     `json:"habit_id"`
	Date      time.Time  `json:"date"` // date only, UTC midnight
	Completed bool       `json:"completed"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// HabitStats is derived from a habit's entries on demand and never stored
type HabitStats struct {
	CompletionRate   int `json:"completion_rate"` // 0-100, floored
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	TotalCompletions int `json:"total_completions"`
	TotalDays        int `json:"total_days"`
}
