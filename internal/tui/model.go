package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/stats"
	"github.com/julianstephens/habitual/internal/utils"
)

type Model struct {
	svc              *tracker.Service
	timezone         string
	state            constants.SessionState
	previousState    constants.SessionState
	keys             KeyMap
	help             help.Model
	habitsModel      habits.Model
	statsModel       stats.Model
	form             *huh.Form
	habitForm        *HabitFormModel
	day              time.Time
	today            time.Time
	quitting         bool
	width            int
	height           int
	habitToArchiveID string
	habitToDeleteID  string
	statusMessage    string
	errorMessage     string
}

func NewModel(svc *tracker.Service, timezone string) Model {
	today, err := utils.TodayInTimezone(timezone)
	if err != nil {
		logger.Warn("Falling back to local time", "timezone", timezone, "error", err)
		today = utils.DateOnly(time.Now())
	}

	m := Model{
		svc:         svc,
		timezone:    timezone,
		state:       constants.StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, 0, 0),
		statsModel:  stats.New(0, 0),
		day:         today,
		today:       today,
	}
	m.refresh()
	return m
}

// refresh reloads every habit's status for the viewed day
func (m *Model) refresh() {
	statuses, err := m.svc.Today(m.day)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Failed to load habits: %v", err)
		return
	}
	overall, err := m.svc.Overall(m.day)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Failed to compute stats: %v", err)
		return
	}
	m.habitsModel.SetStatuses(statuses)
	m.statsModel.SetStats(statuses, overall)
}

func (m *Model) setError(err error) {
	m.statusMessage = ""
	m.errorMessage = err.Error()
}

func (m *Model) setStatus(format string, args ...any) {
	m.errorMessage = ""
	m.statusMessage = fmt.Sprintf(format, args...)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.PrevDay, m.keys.NextDay, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) resize() {
	// tabs, day header and help
	h := m.height - 6
	if h < 0 {
		h = 0
	}
	w := m.width - 4
	if w < 0 {
		w = 0
	}
	m.habitsModel.SetSize(w, h)
	m.statsModel.SetSize(w, h)
}
