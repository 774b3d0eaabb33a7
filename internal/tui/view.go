package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateStats:
		content = docStyle.Render(m.statsModel.View())
	case constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmArchive:
		content = m.viewConfirm(warningStyle.Render("Archive this habit? It keeps its history."))
	case constants.StateConfirmDelete:
		content = m.viewConfirm(dangerStyle.Render("Are you sure you want to delete this habit?"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.viewTabs(), m.viewDay()),
		content,
		m.viewMessage(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Stats"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDay() string {
	label := utils.FormatDate(m.day)
	if m.day.Equal(m.today) {
		label += " (today)"
	}
	return dateStyle.Render(label)
}

func (m Model) viewMessage() string {
	if m.errorMessage != "" {
		return dangerStyle.Render(m.errorMessage)
	}
	if m.statusMessage != "" {
		return warningStyle.Render(m.statusMessage)
	}
	return ""
}

func (m Model) viewConfirm(prompt string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			prompt,
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
