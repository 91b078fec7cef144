package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/coach"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/stats"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/tui/components/overview"
	"github.com/julianstephens/habitlog/internal/tui/components/tracker"
	"github.com/julianstephens/habitlog/internal/utils"
)

type SessionState int

const (
	StateTracker SessionState = iota
	StateStats
	StateCoach
	StateAddHabit
	StateEditNote
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

var tabTitles = []string{"Tracker", "Stats", "Coach"}

type HabitFormModel struct {
	Name        string
	Description string
	Category    models.Category
}

type NoteFormModel struct {
	Text string
}

type Model struct {
	adapter *storage.Adapter
	coach   *coach.Coach
	// beforeDelete runs ahead of a confirmed delete (automatic backup).
	beforeDelete func()
	now          func() time.Time

	habits []models.Habit
	// loadFailed blocks writes until the store can be read again.
	loadFailed bool

	state    SessionState
	keys     KeyMap
	help     help.Model
	tracker  tracker.Model
	overview overview.Model

	form              *huh.Form
	habitForm         *HabitFormModel
	noteForm          *NoteFormModel
	noteHabitID       string
	noteDay           string
	habitToDeleteID   string
	habitToDeleteName string

	conversation coach.Conversation
	input        textinput.Model
	chat         viewport.Model
	spinner      spinner.Model
	thinking     bool

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(adapter *storage.Adapter, c *coach.Coach, beforeDelete func()) Model {
	now := utils.Now
	habits, err := adapter.LoadErr()
	loadFailed := err != nil
	if loadFailed {
		logger.Error("Failed to load habits", "location", adapter.Store().GetConfigPath(), "error", err)
		habits = []models.Habit{}
	}

	input := textinput.New()
	input.Placeholder = "Ask your coach..."
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if beforeDelete == nil {
		beforeDelete = func() {}
	}

	m := Model{
		adapter:      adapter,
		coach:        c,
		beforeDelete: beforeDelete,
		now:          now,
		habits:       habits,
		loadFailed:   loadFailed,
		state:        StateTracker,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		tracker:      tracker.New(habits, utils.ToDateKey(now()), 0, 0),
		overview:     overview.New(0, 0),
		input:        input,
		chat:         viewport.New(0, 0),
		spinner:      sp,
	}
	if loadFailed {
		m.status = loadFailedStatus
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTracker:
		tk := m.tracker.Keys()
		keys = append(keys, tk.Toggle, tk.Note, tk.Add, tk.Delete)
	case StateCoach:
		keys = []key.Binding{m.keys.Tab, m.keys.Send, m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateTracker:
		tk := m.tracker.Keys()
		actions = []key.Binding{tk.Toggle, tk.Note, tk.Add, tk.Delete}
	case StateCoach:
		actions = []key.Binding{m.keys.Send, m.keys.Back}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.tracker.Init()
}

// today is the date key mutations from the tracker apply to.
func (m Model) today() string {
	return utils.ToDateKey(m.now())
}

// refresh pushes the current collection into every view.
func (m *Model) refresh() {
	m.tracker.SetHabits(m.habits, m.today())
	m.overview.SetOverview(stats.NewOverview(m.habits, m.now(), constants.DailyWindowDays, constants.MonthlyWindowMonths))
	m.renderChat()
}

const loadFailedStatus = "Could not read saved habits; changes are not being saved."

// reload reads the collection again after a failed load.
func (m *Model) reload() bool {
	habits, err := m.adapter.LoadErr()
	if err != nil {
		logger.Warn("Reload failed", "location", m.adapter.Store().GetConfigPath(), "error", err)
		m.status = loadFailedStatus
		return false
	}
	m.habits = habits
	m.loadFailed = false
	m.status = "Saved habits loaded again; repeat the last change."
	m.refresh()
	return true
}

// commit replaces the collection and persists it. It reports false when
// nothing was written. Edits made while the load had failed were computed
// from an empty collection and are dropped.
func (m *Model) commit(habits []models.Habit) bool {
	if m.loadFailed {
		m.reload()
		return false
	}
	m.habits = habits
	m.adapter.Save(habits)
	m.refresh()
	return true
}
