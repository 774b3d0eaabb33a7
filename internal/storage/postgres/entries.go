package postgres

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
		FROM habit_entries WHERE habit_id = $1 AND day = $2 AND deleted_at IS NULL`,
		habitID, utils.FormatDate(day))

	e, err := sqlutil.ScanEntry(row)
	if err != nil {
		return models.HabitEntry{}, sqlutil.NotFound(err, "entry for habit %s on %s", habitID, utils.FormatDate(day))
	}
	return e, nil
}

func (s *Store) GetHabitEntriesForDay(day time.Time) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries WHERE day = $1 AND deleted_at IS NULL
		ORDER BY created_at`, utils.FormatDate(day))
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

func (s *Store) GetHabitEntriesForHabit(habitID string, from, to time.Time) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries
		WHERE habit_id = $1 AND day >= $2 AND day <= $3 AND deleted_at IS NULL
		ORDER BY day DESC`, habitID, utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

func (s *Store) GetAllHabitEntriesForHabit(habitID string) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(`SELECT `+sqlutil.EntryColumns+`
		FROM habit_entries WHERE habit_id = $1 AND deleted_at IS NULL
		ORDER BY day DESC`, habitID)
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectEntries(rows)
}

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			completed = EXCLUDED.completed,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at`,
		entry.ID, entry.HabitID, utils.FormatDate(entry.Date), entry.Completed, entry.Note,
		sqlutil.FormatTime(entry.CreatedAt), sqlutil.FormatTime(entry.UpdatedAt), sqlutil.NullTime(entry.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to save entry for habit %s on %s: %w", entry.HabitID, utils.FormatDate(entry.Date), err)
	}
	return nil
}

func (s *Store) DeleteHabitEntry(id string) error {
	result, err := s.db.Exec(`
		UPDATE habit_entries SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "habit entry %s (or already deleted)", id)
}

func (s *Store) RestoreHabitEntry(id string) error {
	result, err := s.db.Exec(`
		UPDATE habit_entries SET deleted_at = NULL, updated_at = $1
		WHERE id = $2 AND deleted_at IS NOT NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "deleted habit entry %s", id)
}
