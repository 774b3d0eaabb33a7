package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/tracker"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type Model struct {
	statuses []tracker.Status
	overall  int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetStats(statuses []tracker.Status, overall int) {
	m.statuses = statuses
	m.overall = overall
}

func (m Model) View() string {
	if len(m.statuses) == 0 {
		return "\n  No habits to report on yet."
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Habit", "Rate", "Current", "Longest", "Done")
	for _, st := range m.statuses {
		s := st.Stats
		t.Row(st.Habit.Name,
			fmt.Sprintf("%d%%", s.CompletionRate),
			fmt.Sprint(s.CurrentStreak),
			fmt.Sprint(s.LongestStreak),
			fmt.Sprintf("%d/%d", s.TotalCompletions, s.TotalDays))
	}

	var b strings.Builder
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\n\nOverall completion: %d%% %s", m.overall, Bar(m.overall, 20))
	return b.String()
}

// Bar draws a width-cell progress bar for a 0-100 percentage
func Bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
