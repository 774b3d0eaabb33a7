package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidRule        ConflictType = "invalid_rule"
	ConflictDuplicateEntry     ConflictType = "duplicate_entry"
	ConflictOrphanEntry        ConflictType = "orphan_entry"
	ConflictEntryBeforeStart   ConflictType = "entry_before_start"
)

// Conflict represents a detected problem in stored habits or entries
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
	EntryIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks habit definitions and stored histories
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator
func New() *Validator {
	return &Validator{v: validator.New()}
}

// ValidateHabit checks a single habit definition before it is saved. The
// recurrence engine tolerates malformed rules, but the CLI and API refuse
// to store them.
func (v *Validator) ValidateHabit(h models.Habit) error {
	var problems []string

	if err := v.v.Struct(h); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
	}
	if strings.TrimSpace(h.Name) == "" && !containsPrefix(problems, "name") {
		problems = append(problems, "name must not be blank")
	}
	if h.StartDate.IsZero() {
		problems = append(problems, "start date is required")
	}

	if len(problems) > 0 {
		return apperrors.Invalidf("habit %q: %s", h.Name, strings.Join(problems, "; "))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "datetime":
		return field + " must be in HH:MM format"
	case "hexcolor":
		return field + " must be a hex color like #4caf50"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func containsPrefix(items []string, prefix string) bool {
	for _, s := range items {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// ValidateHistory checks stored habits and entries for problems the
// analytics would otherwise silently absorb: duplicate entries for one day,
// entries pointing at unknown habits, entries before a habit's start date,
// and malformed recurrence rules. Deleted records are ignored; entries of a
// soft-deleted habit are kept for restore and are not orphans. Names are
// compared case-insensitively.
func (v *Validator) ValidateHistory(habits []models.Habit, entries []models.HabitEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.Habit)
	deleted := make(map[string]bool)
	nameCount := make(map[string][]string)
	for _, h := range habits {
		if h.DeletedAt != nil {
			deleted[h.ID] = true
			continue
		}
		byID[h.ID] = h
		if h.Name != "" {
			name := strings.ToLower(h.Name)
			nameCount[name] = append(nameCount[name], h.ID)
		}
		if err := v.ValidateHabit(h); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRule,
				Description: err.Error(),
				HabitIDs:    []string{h.ID},
			})
		}
	}

	names := make([]string, 0, len(nameCount))
	for name := range nameCount {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := nameCount[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	type key struct{ habitID, day string }
	seen := make(map[key][]string)
	var order []key
	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		if deleted[e.HabitID] {
			continue
		}
		day := utils.FormatDate(e.Date)

		h, ok := byID[e.HabitID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanEntry,
				Description: fmt.Sprintf("Entry %s on %s references unknown habit %s", e.ID, day, e.HabitID),
				EntryIDs:    []string{e.ID},
			})
			continue
		}
		if utils.DateOnly(e.Date).Before(utils.DateOnly(h.StartDate)) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEntryBeforeStart,
				Description: fmt.Sprintf("Habit %q has an entry on %s before its start date %s", h.Name, day, utils.FormatDate(h.StartDate)),
				HabitIDs:    []string{h.ID},
				EntryIDs:    []string{e.ID},
			})
		}

		k := key{e.HabitID, day}
		if _, ok := seen[k]; !ok {
			order = append(order, k)
		}
		seen[k] = append(seen[k], e.ID)
	}

	for _, k := range order {
		if ids := seen[k]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEntry,
				Description: fmt.Sprintf("Habit %q has %d entries on %s", byID[k.habitID].Name, len(ids), k.day),
				HabitIDs:    []string{k.habitID},
				EntryIDs:    ids,
			})
		}
	}

	return result
}
