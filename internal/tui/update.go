package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/utils"
)

const tabCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.state == constants.StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
			m.state = m.previousState
			m.form = nil
			m.habitForm = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		switch m.form.State {
		case huh.StateCompleted:
			m.saveHabitForm()
			m.state = m.previousState
			m.form = nil
			m.habitForm = nil
			return m, nil
		case huh.StateAborted:
			m.state = m.previousState
			m.form = nil
			m.habitForm = nil
			return m, nil
		}
		return m, cmd
	}

	if m.state == constants.StateConfirmArchive || m.state == constants.StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				m.confirm()
				m.state = m.previousState
			case "n", "N", "esc", "q":
				m.habitToArchiveID = ""
				m.habitToDeleteID = ""
				m.state = m.previousState
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			m.day = utils.AddDays(m.day, -1)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			if m.day.Before(m.today) {
				m.day = utils.AddDays(m.day, 1)
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.day = m.today
			m.refresh()
			return m, nil
		}

	case habits.AddHabitMsg:
		m.previousState = m.state
		m.state = constants.StateAddHabit
		m.habitForm = &HabitFormModel{
			Frequency: string(constants.FrequencyDaily),
			Period:    string(constants.PeriodDay),
			Every:     "1",
			Start:     utils.FormatDate(m.day),
		}
		m.form = newHabitForm(m.habitForm)
		return m, m.form.Init()

	case habits.MarkHabitMsg:
		entry, err := m.svc.Mark(msg.ID, m.day, msg.Completed, "")
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if entry.Completed {
			m.setStatus("Marked done for %s", utils.FormatDate(m.day))
		} else {
			m.setStatus("Marked not done for %s", utils.FormatDate(m.day))
		}
		m.refresh()
		return m, nil

	case habits.UnmarkHabitMsg:
		if err := m.svc.Unmark(msg.ID, m.day); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Cleared %s", utils.FormatDate(m.day))
		m.refresh()
		return m, nil

	case habits.ArchiveHabitMsg:
		m.habitToArchiveID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmArchive
		return m, nil

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	}

	if m.state == constants.StateHabits {
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) saveHabitForm() {
	h, err := m.habitForm.Habit()
	if err != nil {
		m.setError(err)
		return
	}
	saved, err := m.svc.AddHabit(h)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Added habit %q", saved.Name)
	m.refresh()
}

func (m *Model) confirm() {
	store := m.svc.Store()
	switch m.state {
	case constants.StateConfirmArchive:
		if err := store.ArchiveHabit(m.habitToArchiveID); err != nil {
			m.setError(err)
		} else {
			logger.Info("Habit archived", "id", m.habitToArchiveID)
			m.setStatus("Habit archived")
		}
		m.habitToArchiveID = ""
	case constants.StateConfirmDelete:
		if err := store.DeleteHabit(m.habitToDeleteID); err != nil {
			m.setError(err)
		} else {
			logger.Info("Habit deleted", "id", m.habitToDeleteID)
			m.setStatus("Habit deleted")
		}
		m.habitToDeleteID = ""
	}
	m.refresh()
}
