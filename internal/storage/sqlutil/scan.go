// Package sqlutil holds the row encoding shared by the SQL-backed stores.
// Timestamps are RFC 3339 strings and calendar days are YYYY-MM-DD strings
// in both dialects.
package sqlutil

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// HabitColumns is the column list every habit query selects, in scan order
const HabitColumns = `id, name, description, frequency, custom_times, custom_period, start_date,
	reminder_enabled, reminder_time, color, created_at, updated_at, archived_at, deleted_at`

// EntryColumns is the column list every habit entry query selects, in scan order
const EntryColumns = `id, habit_id, day, completed, note, created_at, updated_at, deleted_at`

// Scanner is satisfied by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// ScanHabit reads one row selected with HabitColumns
func ScanHabit(row Scanner) (models.Habit, error) {
	var (
		h                     models.Habit
		frequency, period     string
		startDate             string
		createdAt, updatedAt  string
		archivedAt, deletedAt sql.NullString
	)

	err := row.Scan(&h.ID, &h.Name, &h.Description, &frequency, &h.CustomTimes, &period, &startDate,
		&h.ReminderEnabled, &h.ReminderTime, &h.Color, &createdAt, &updatedAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = constants.Frequency(frequency)
	h.CustomPeriod = constants.Period(period)

	if h.StartDate, err = utils.ParseDate(startDate); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse start_date for habit %s: %w", h.ID, err)
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}
	if h.ArchivedAt, err = parseNullTime(archivedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse archived_at for habit %s: %w", h.ID, err)
	}
	if h.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %s: %w", h.ID, err)
	}

	return h, nil
}

// ScanEntry reads one row selected with EntryColumns
func ScanEntry(row Scanner) (models.HabitEntry, error) {
	var (
		e                    models.HabitEntry
		day                  string
		createdAt, updatedAt string
		deletedAt            sql.NullString
	)

	err := row.Scan(&e.ID, &e.HabitID, &day, &e.Completed, &e.Note, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return models.HabitEntry{}, err
	}

	if e.Date, err = utils.ParseDate(day); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse day for entry %s: %w", e.ID, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse created_at for entry %s: %w", e.ID, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse updated_at for entry %s: %w", e.ID, err)
	}
	if e.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse deleted_at for entry %s: %w", e.ID, err)
	}

	return e, nil
}

// CollectHabits drains rows into a slice, closing rows when done
func CollectHabits(rows *sql.Rows) ([]models.Habit, error) {
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := ScanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// CollectEntries drains rows into a slice, closing rows when done
func CollectEntries(rows *sql.Rows) ([]models.HabitEntry, error) {
	defer rows.Close()

	entries := []models.HabitEntry{}
	for rows.Next() {
		e, err := ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FormatTime encodes a bookkeeping timestamp
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NullTime encodes an optional bookkeeping timestamp
func NullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

// NotFound maps sql.ErrNoRows onto apperrors.ErrNotFound and passes other
// errors through unchanged.
func NotFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFoundf(format, args...)
	}
	return err
}

// ExpectOneRow turns a zero-row update into apperrors.ErrNotFound
func ExpectOneRow(result sql.Result, format string, args ...any) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf(format, args...)
	}
	return nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
