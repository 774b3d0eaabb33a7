package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/sqlutil"
	"github.com/julianstephens/habitual/internal/utils"
)

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+sqlutil.HabitColumns+`
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)

	h, err := sqlutil.ScanHabit(row)
	if err != nil {
		return models.Habit{}, sqlutil.NotFound(err, "habit %s", id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+sqlutil.HabitColumns+`
		FROM habits WHERE name = ? AND deleted_at IS NULL
		ORDER BY created_at LIMIT 1`, name)

	h, err := sqlutil.ScanHabit(row)
	if err != nil {
		return models.Habit{}, sqlutil.NotFound(err, "habit %q", name)
	}
	return h, nil
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + sqlutil.HabitColumns + " FROM habits WHERE 1=1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at, name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	return sqlutil.CollectHabits(rows)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+sqlutil.HabitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			frequency = excluded.frequency,
			custom_times = excluded.custom_times,
			custom_period = excluded.custom_period,
			start_date = excluded.start_date,
			reminder_enabled = excluded.reminder_enabled,
			reminder_time = excluded.reminder_time,
			color = excluded.color,
			updated_at = excluded.updated_at,
			archived_at = excluded.archived_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.Name, habit.Description, string(habit.Frequency), habit.CustomTimes,
		string(habit.CustomPeriod), utils.FormatDate(habit.StartDate), habit.ReminderEnabled,
		habit.ReminderTime, habit.Color, sqlutil.FormatTime(habit.CreatedAt), sqlutil.FormatTime(habit.UpdatedAt),
		sqlutil.NullTime(habit.ArchivedAt), sqlutil.NullTime(habit.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to save habit %s: %w", habit.ID, err)
	}
	return nil
}

func (s *Store) ArchiveHabit(id string) error {
	now := sqlutil.FormatTime(time.Now())
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL AND archived_at IS NULL`,
		now, now, id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "habit %s (or already archived/deleted)", id)
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "archived habit %s", id)
}

func (s *Store) DeleteHabit(id string) error {
	now := sqlutil.FormatTime(time.Now())
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "habit %s (or already deleted)", id)
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL, updated_at = ?
		WHERE id = ? AND deleted_at IS NOT NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "deleted habit %s", id)
}
