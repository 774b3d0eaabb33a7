package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/sqlutil"
	"github.com/julianstephens/habitual/internal/utils"
)

func (s *Store) AddHabitEntry(entry models.HabitEntry) error {
	return s.UpdateHabitEntry(entry)
}

func (s *Store) GetHabitEntry(habitID string, day time.Time) (models.HabitEntry, error) {
	row := s.db.QueryRow(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries WHERE habit_id = ? AND day = ? AND deleted_at IS NULL`,
		habitID, utils.FormatDate(day))

	e, err := sqlutil.ScanEntry(row)
	if err != nil {
		return models.HabitEntry{}, sqlutil.NotFound(err, "entry for habit %s on %s", habitID, utils.FormatDate(day))
	}
	return e, nil
}

func (s *Store) GetHabitEntriesForDay(day time.Time) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries WHERE day = ? AND deleted_at IS NULL
		ORDER BY created_at`, utils.FormatDate(day))
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

// GetHabitEntriesForHabit returns live entries in [from, to], newest first
func (s *Store) GetHabitEntriesForHabit(habitID string, from, to time.Time) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries
		WHERE habit_id = ? AND day >= ? AND day <= ? AND deleted_at IS NULL
		ORDER BY day DESC`, habitID, utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

// GetAllHabitEntriesForHabit returns the habit's full live history, newest first
func (s *Store) GetAllHabitEntriesForHabit(habitID string) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries WHERE habit_id = ? AND deleted_at IS NULL
		ORDER BY day DESC`, habitID)
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

// GetAllHabitEntries returns every entry, soft-deleted ones included
func (s *Store) GetAllHabitEntries() ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT ` + sqlutil.EntryColumns + `
		FROM habit_entries ORDER BY habit_id, day`)
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

func (s *Store) UpdateHabitEntry(entry models.HabitEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO habit_entries (`+sqlutil.EntryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			completed = excluded.completed,
			note = excluded.note,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		entry.ID, entry.HabitID, utils.FormatDate(entry.Date), entry.Completed, entry.Note,
		sqlutil.FormatTime(entry.CreatedAt), sqlutil.FormatTime(entry.UpdatedAt), sqlutil.NullTime(entry.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to save entry for habit %s on %s: %w", entry.HabitID, utils.FormatDate(entry.Date), err)
	}
	return nil
}

func (s *Store) DeleteHabitEntry(id string) error {
	now := sqlutil.FormatTime(time.Now())
	result, err := s.db.Exec(`
		UPDATE habit_entries SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "habit entry %s (or already deleted)", id)
}

func (s *Store) RestoreHabitEntry(id string) error {
	result, err := s.db.Exec(`
		UPDATE habit_entries SET deleted_at = NULL, updated_at = ?
		WHERE id = ? AND deleted_at IS NOT NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "deleted habit entry %s", id)
}
