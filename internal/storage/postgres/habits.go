package postgres

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
		FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)

	h, err := sqlutil.ScanHabit(row)
	if err != nil {
		return models.Habit{}, sqlutil.NotFound(err, "habit %s", id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+sqlutil.HabitColumns+`
		FROM habits WHERE name = $1 AND deleted_at IS NULL
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT(id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			frequency = EXCLUDED.frequency,
			custom_times = EXCLUDED.custom_times,
			custom_period = EXCLUDED.custom_period,
			start_date = EXCLUDED.start_date,
			reminder_enabled = EXCLUDED.reminder_enabled,
			reminder_time = EXCLUDED.reminder_time,
			color = EXCLUDED.color,
			updated_at = EXCLUDED.updated_at,
			archived_at = EXCLUDED.archived_at,
			deleted_at = EXCLUDED.deleted_at`,
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
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "habit %s (or already archived/deleted)", id)
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "archived habit %s", id)
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "habit %s (or already deleted)", id)
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL, updated_at = $1
		WHERE id = $2 AND deleted_at IS NOT NULL`,
		sqlutil.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectOneRow(result, "deleted habit %s", id)
}
