package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type AddHabitMsg struct{}

// MarkHabitMsg records the viewed day as done, or as not done when
// Completed is false
type MarkHabitMsg struct {
	ID        string
	Completed bool
}

type UnmarkHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Status tracker.Status
}

func (i Item) Title() string {
	switch {
	case i.Status.Done():
		return "✓ " + i.Status.Habit.Name
	case i.Status.Skipped():
		return "✗ " + i.Status.Habit.Name
	case i.Status.Due:
		return "○ " + i.Status.Habit.Name
	default:
		return "· " + i.Status.Habit.Name
	}
}

func (i Item) Description() string {
	desc := i.Status.Rule
	if i.Status.Stats.CurrentStreak > 0 {
		desc += fmt.Sprintf(" · streak %d", i.Status.Stats.CurrentStreak)
	}
	if !i.Status.Due {
		if i.Status.NextDue != nil {
			desc += " · next " + utils.FormatDate(*i.Status.NextDue)
		} else {
			desc += " · not due"
		}
	}
	return desc
}

func (i Item) FilterValue() string { return i.Status.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Mark    key.Binding
	Skip    key.Binding
	Unmark  key.Binding
	Archive key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "mark done"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "not done"),
		),
		Unmark: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(statuses []tracker.Status, width, height int) Model {
	l := list.New(items(statuses), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	bindings := func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Skip, keys.Unmark, keys.Archive, keys.Delete}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	return Model{list: l, keys: keys}
}

func items(statuses []tracker.Status) []list.Item {
	out := make([]list.Item, len(statuses))
	for i, st := range statuses {
		out[i] = Item{Status: st}
	}
	return out
}

func (m *Model) SetStatuses(statuses []tracker.Status) {
	m.list.SetItems(items(statuses))
}

// Selected returns the highlighted habit's status
func (m Model) Selected() (tracker.Status, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Status, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}

		if st, ok := m.Selected(); ok {
			id := st.Habit.ID
			switch {
			case key.Matches(msg, m.keys.Mark):
				if st.Done() {
					return m, nil
				}
				return m, func() tea.Msg { return MarkHabitMsg{ID: id, Completed: true} }
			case key.Matches(msg, m.keys.Skip):
				if st.Skipped() {
					return m, nil
				}
				return m, func() tea.Msg { return MarkHabitMsg{ID: id, Completed: false} }
			case key.Matches(msg, m.keys.Unmark):
				if st.Entry == nil {
					return m, nil
				}
				return m, func() tea.Msg { return UnmarkHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Archive):
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteHabitMsg{ID: id} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
