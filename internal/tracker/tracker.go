// Package tracker answers "what is due" and "how am I doing" questions by
// loading habit snapshots from storage and handing them to the pure
// recurrence and streaks packages.
package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/recurrence"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streaks"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

// Status is one habit's state on a given day
type Status struct {
	Habit   models.Habit       `json:"habit"`
	Rule    string             `json:"rule"`
	Due     bool               `json:"due"`
	Entry   *models.HabitEntry `json:"entry,omitempty"`
	NextDue *time.Time         `json:"next_due,omitempty"`
	// LastDone is the most recent completed day on or before today
	LastDone     *time.Time        `json:"last_done,omitempty"`
	NextReminder *time.Time        `json:"next_reminder,omitempty"`
	Stats        models.HabitStats `json:"stats"`
}

// Done reports whether the day has a completed entry
func (s Status) Done() bool {
	return s.Entry != nil && s.Entry.Completed
}

// Skipped reports whether the day was explicitly recorded as not done
func (s Status) Skipped() bool {
	return s.Entry != nil && !s.Entry.Completed
}

// Service is safe for concurrent use when its store is
type Service struct {
	store     storage.Provider
	eval      recurrence.Evaluator
	validator *validation.Validator
	loc       *time.Location
	now       func() time.Time
}

func New(store storage.Provider, eval recurrence.Evaluator, v *validation.Validator) *Service {
	if v == nil {
		v = validation.New()
	}
	return &Service{
		store:     store,
		eval:      eval,
		validator: v,
		loc:       time.Local,
		now:       time.Now,
	}
}

// SetLocation sets the zone reminder times are read in. nil means local.
func (s *Service) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	s.loc = loc
}

func (s *Service) Store() storage.Provider { return s.store }

func (s *Service) Evaluator() recurrence.Evaluator { return s.eval }

func (s *Service) Validator() *validation.Validator { return s.validator }

// Resolve finds a live habit by ID, then by exact name, then by
// case-insensitive name.
func (s *Service) Resolve(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Habit{}, apperrors.Invalidf("habit name or ID is required")
	}

	if h, err := s.store.GetHabit(ref); err == nil {
		return h, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return models.Habit{}, err
	}

	if h, err := s.store.GetHabitByName(ref); err == nil {
		return h, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return models.Habit{}, err
	}

	habits, err := s.store.GetAllHabits(true, false)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, apperrors.NotFoundf("habit %q", ref)
}

// AddHabit validates and stores a new habit, filling in its ID and
// timestamps. Names are unique among live habits, ignoring case.
func (s *Service) AddHabit(h models.Habit) (models.Habit, error) {
	h.Name = strings.TrimSpace(h.Name)
	h.StartDate = utils.DateOnly(h.StartDate)
	if err := s.validator.ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}

	if err := s.checkNameFree(h.Name, ""); err != nil {
		return models.Habit{}, err
	}

	now := s.now().UTC().Truncate(time.Second)
	h.ID = uuid.New().String()
	h.CreatedAt = now
	h.UpdatedAt = now
	h.ArchivedAt = nil
	h.DeletedAt = nil

	if err := s.store.AddHabit(h); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit created", "id", h.ID, "name", h.Name, "rule", recurrence.Describe(h))
	return h, nil
}

// UpdateHabit validates and saves changes to an existing habit
func (s *Service) UpdateHabit(h models.Habit) (models.Habit, error) {
	existing, err := s.store.GetHabit(h.ID)
	if err != nil {
		return models.Habit{}, err
	}

	h.Name = strings.TrimSpace(h.Name)
	h.StartDate = utils.DateOnly(h.StartDate)
	if err := s.validator.ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}

	if h.Name != existing.Name {
		if err := s.checkNameFree(h.Name, h.ID); err != nil {
			return models.Habit{}, err
		}
	}

	h.CreatedAt = existing.CreatedAt
	h.ArchivedAt = existing.ArchivedAt
	h.DeletedAt = existing.DeletedAt
	h.UpdatedAt = s.now().UTC().Truncate(time.Second)

	if err := s.store.UpdateHabit(h); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit updated", "id", h.ID, "name", h.Name)
	return h, nil
}

// checkNameFree fails when a live habit other than selfID already uses
// name in any letter case.
func (s *Service) checkNameFree(name, selfID string) error {
	habits, err := s.store.GetAllHabits(true, false)
	if err != nil {
		return err
	}
	for _, other := range habits {
		if other.ID != selfID && strings.EqualFold(other.Name, name) {
			return fmt.Errorf("habit %q: %w", name, apperrors.ErrAlreadyExists)
		}
	}
	return nil
}

// Due returns the active habits due on day, in storage order
func (s *Service) Due(day time.Time) ([]models.Habit, error) {
	habits, err := s.store.GetAllHabits(false, false)
	if err != nil {
		return nil, err
	}

	due := []models.Habit{}
	for _, h := range habits {
		if s.eval.IsDueOn(h, day) {
			due = append(due, h)
		}
	}
	logger.Debug("Evaluated due habits", "day", utils.FormatDate(day), "active", len(habits), "due", len(due))
	return due, nil
}

// Today returns every active habit's status on today: due habits first,
// then by name.
func (s *Service) Today(today time.Time) ([]Status, error) {
	today = utils.DateOnly(today)

	habits, err := s.store.GetAllHabits(false, false)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(habits))
	for _, h := range habits {
		st, err := s.status(h, today)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Due != statuses[j].Due {
			return statuses[i].Due
		}
		return strings.ToLower(statuses[i].Habit.Name) < strings.ToLower(statuses[j].Habit.Name)
	})
	return statuses, nil
}

// Status returns one habit's state on today
func (s *Service) Status(habitID string, today time.Time) (Status, error) {
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		return Status{}, err
	}
	return s.status(h, utils.DateOnly(today))
}

func (s *Service) status(h models.Habit, today time.Time) (Status, error) {
	entries, err := s.store.GetAllHabitEntriesForHabit(h.ID)
	if err != nil {
		return Status{}, fmt.Errorf("failed to load entries for habit %s: %w", h.ID, err)
	}

	st := Status{
		Habit: h,
		Rule:  recurrence.Describe(h),
		Due:   s.eval.IsDueOn(h, today),
		Stats: streaks.Analyze(entries, today),
	}
	for i := range entries {
		if utils.DateOnly(entries[i].Date).Equal(today) {
			e := entries[i]
			st.Entry = &e
			break
		}
	}
	if next, ok := s.eval.NextDueDate(h, utils.AddDays(today, 1)); ok {
		st.NextDue = &next
	}
	if last, ok := streaks.LastCompleted(streaks.Window(entries, h.StartDate, today)); ok {
		d := utils.DateOnly(last.Date)
		st.LastDone = &d
	}
	if at, ok := s.eval.NextReminder(h, s.now(), s.loc); ok {
		st.NextReminder = &at
	}
	return st, nil
}

// Stats analyses a habit's full history as of today
func (s *Service) Stats(habitID string, today time.Time) (models.HabitStats, error) {
	entries, err := s.store.GetAllHabitEntriesForHabit(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	return streaks.Analyze(entries, today), nil
}

// StatsWindow analyses only the entries dated within [from, to]
func (s *Service) StatsWindow(habitID string, from, to, today time.Time) (models.HabitStats, error) {
	if err := checkRange(from, to); err != nil {
		return models.HabitStats{}, err
	}
	entries, err := s.store.GetAllHabitEntriesForHabit(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	return streaks.Analyze(streaks.Window(entries, from, to), today), nil
}

// Progress is how a habit did against its schedule over a date range
type Progress struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	// Due counts scheduled days, Done counts completed days of any kind
	Due  int `json:"due"`
	Done int `json:"done"`
}

// Progress compares the days habit was scheduled in [from, to] with the
// days it was completed.
func (s *Service) Progress(habitID string, from, to time.Time) (Progress, error) {
	if err := checkRange(from, to); err != nil {
		return Progress{}, err
	}
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		return Progress{}, err
	}
	entries, err := s.store.GetAllHabitEntriesForHabit(h.ID)
	if err != nil {
		return Progress{}, err
	}
	return Progress{
		From: utils.DateOnly(from),
		To:   utils.DateOnly(to),
		Due:  len(s.eval.DueDates(h, from, to)),
		Done: streaks.CompletedBetween(entries, from, to),
	}, nil
}

func checkRange(from, to time.Time) error {
	if utils.DateOnly(to).Before(utils.DateOnly(from)) {
		return apperrors.Invalidf("range end %s is before start %s", utils.FormatDate(to), utils.FormatDate(from))
	}
	return nil
}

// Overall pools the entries of every active habit that has started by
// today into one completion rate.
func (s *Service) Overall(today time.Time) (int, error) {
	today = utils.DateOnly(today)

	habits, err := s.store.GetAllHabits(false, false)
	if err != nil {
		return 0, err
	}

	byHabit := make(map[string][]models.HabitEntry, len(habits))
	for _, h := range habits {
		if utils.DateOnly(h.StartDate).After(today) {
			continue
		}
		entries, err := s.store.GetAllHabitEntriesForHabit(h.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to load entries for habit %s: %w", h.ID, err)
		}
		byHabit[h.ID] = entries
	}
	return streaks.Overall(byHabit), nil
}

// History returns a habit's entries in [from, to], newest first
func (s *Service) History(habitID string, from, to time.Time) ([]models.HabitEntry, error) {
	return s.store.GetHabitEntriesForHabit(habitID, from, to)
}

// Mark records day as done (completed) or explicitly not done, replacing
// any entry already recorded for that day.
func (s *Service) Mark(habitID string, day time.Time, completed bool, note string) (models.HabitEntry, error) {
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		return models.HabitEntry{}, err
	}

	day = utils.DateOnly(day)
	if day.Before(utils.DateOnly(h.StartDate)) {
		return models.HabitEntry{}, apperrors.Invalidf("%s is before %q starts on %s",
			utils.FormatDate(day), h.Name, utils.FormatDate(h.StartDate))
	}

	now := s.now().UTC().Truncate(time.Second)
	entry := models.HabitEntry{
		ID:        uuid.New().String(),
		HabitID:   h.ID,
		Date:      day,
		Completed: completed,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.AddHabitEntry(entry); err != nil {
		return models.HabitEntry{}, err
	}

	// the upsert keeps the first ID for the day
	saved, err := s.store.GetHabitEntry(h.ID, day)
	if err != nil {
		return models.HabitEntry{}, err
	}
	logger.Info("Habit entry recorded", "habit", h.Name, "day", utils.FormatDate(day), "completed", completed)
	return saved, nil
}

// Unmark removes the entry for day, leaving the day unrecorded
func (s *Service) Unmark(habitID string, day time.Time) error {
	entry, err := s.store.GetHabitEntry(habitID, day)
	if err != nil {
		return err
	}
	if err := s.store.DeleteHabitEntry(entry.ID); err != nil {
		return err
	}
	logger.Info("Habit entry removed", "habit_id", habitID, "day", utils.FormatDate(day))
	return nil
}

// Check runs the history validator over everything in storage
func (s *Service) Check() (validation.ValidationResult, error) {
	habits, err := s.store.GetAllHabits(true, true)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	entries, err := s.store.GetAllHabitEntries()
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return s.validator.ValidateHistory(habits, entries), nil
}

// RestoreHabit brings back a soft-deleted habit found by ID or name. It
// fails when a live habit has since taken the name.
func (s *Service) RestoreHabit(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	habits, err := s.store.GetAllHabits(true, true)
	if err != nil {
		return models.Habit{}, err
	}

	var found *models.Habit
	for i := range habits {
		h := habits[i]
		if h.DeletedAt == nil {
			continue
		}
		if h.ID == ref || strings.EqualFold(h.Name, ref) {
			found = &h
			break
		}
	}
	if found == nil {
		return models.Habit{}, apperrors.NotFoundf("deleted habit %q", ref)
	}

	if err := s.checkNameFree(found.Name, found.ID); err != nil {
		return models.Habit{}, err
	}

	if err := s.store.RestoreHabit(found.ID); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit restored", "id", found.ID, "name", found.Name)
	return s.store.GetHabit(found.ID)
}
