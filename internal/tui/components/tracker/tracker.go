package tracker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/models"
)

type AddHabitMsg struct{}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

type ToggleHabitMsg struct {
	ID string
}

type NoteHabitMsg struct {
	Habit models.Habit
}

// Item is a habit as shown for a single day.
type Item struct {
	Habit models.Habit
	Day   string
}

func (i Item) Title() string {
	if i.Habit.IsDone(i.Day) {
		return "[x] " + i.Habit.Name
	}
	return "[ ] " + i.Habit.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %d completions", i.Habit.Category, i.Habit.CompletionCount())
	if note, ok := i.Habit.Note(i.Day); ok {
		desc += " | " + note
	} else if i.Habit.Description != "" {
		desc += " | " + i.Habit.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Note   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle today"),
		),
		Note: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "note"),
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

func New(habits []models.Habit, day string, width, height int) Model {
	l := list.New(items(habits, day), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Note, keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Note, keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(habits []models.Habit, day string) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h, Day: day}
	}
	return out
}

// SetHabits replaces the rows, keeping the cursor where it was.
func (m *Model) SetHabits(habits []models.Habit, day string) {
	index := m.list.Index()
	m.list.SetItems(items(habits, day))
	if index >= len(habits) {
		index = len(habits) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return i.Habit, true
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Note):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return NoteHabitMsg{Habit: h} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID, Name: h.Name} }
			}
			return m, nil
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

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
