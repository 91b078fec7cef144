package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tui/components/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case coachReplyMsg:
		m.handleCoachReply(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateEditNote:
		return m.updateEditNote(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateCoach:
		return m.updateCoach(msg)
	}

	switch msg := msg.(type) {
	case tracker.AddHabitMsg:
		return m.openAddHabit()
	case tracker.ToggleHabitMsg:
		m.toggle(msg.ID)
		return m, nil
	case tracker.NoteHabitMsg:
		return m.openNote(msg.Habit)
	case tracker.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.habitToDeleteName = msg.Name
		m.state = StateConfirmDelete
		return m, nil
	case tea.KeyMsg:
		m.status = ""
		if m.state == StateTracker && m.tracker.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			return m.switchTab(1)
		case key.Matches(msg, m.keys.ShiftTab):
			return m.switchTab(-1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateTracker:
		m.tracker, cmd = m.tracker.Update(msg)
	case StateStats:
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	m.state = SessionState((int(m.state) + delta + tabCount) % tabCount)
	if m.state == StateCoach {
		cmd := m.enterCoach()
		return m, cmd
	}
	m.input.Blur()
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	bodyWidth := max(width-4, 0)
	bodyHeight := max(height-6, 0)
	m.tracker.SetSize(bodyWidth, bodyHeight)
	m.overview.SetSize(bodyWidth, bodyHeight)
	m.chat.Width = bodyWidth
	m.chat.Height = max(bodyHeight-3, 0)
	m.input.Width = max(bodyWidth-4, 0)
	m.renderChat()
}

func (m *Model) toggle(id string) {
	h, ok := models.Find(m.habits, id)
	if !ok {
		return
	}
	habits, err := models.Replace(m.habits, models.ToggleLog(h, m.today()))
	if err != nil {
		logger.Warn("Failed to toggle habit", "id", id, "error", err)
		return
	}
	m.commit(habits)
}

func (m Model) openAddHabit() (tea.Model, tea.Cmd) {
	m.habitForm = &HabitFormModel{Category: models.DefaultCategory}
	m.form = newHabitForm(m.habitForm, m.habits)
	m.state = StateAddHabit
	return m, m.form.Init()
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateTracker
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		h, err := models.NewHabit(m.habitForm.Name, m.habitForm.Description, m.habitForm.Category, m.now())
		if err != nil {
			// Stay in the form so the user can correct the input
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		if m.commit(models.Add(m.habits, h)) {
			m.status = fmt.Sprintf("Added %q", h.Name)
		}
		m.state = StateTracker
	case huh.StateAborted:
		m.state = StateTracker
	}
	return m, cmd
}

func (m Model) openNote(h models.Habit) (tea.Model, tea.Cmd) {
	day := m.today()
	note, _ := h.Note(day)
	m.noteForm = &NoteFormModel{Text: note}
	m.noteHabitID = h.ID
	m.noteDay = day
	m.form = newNoteForm(m.noteForm, h.Name, day)
	m.state = StateEditNote
	return m, m.form.Init()
}

func (m Model) updateEditNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateTracker
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveNote(m.noteHabitID, m.noteDay, m.noteForm.Text)
		m.state = StateTracker
	case huh.StateAborted:
		m.state = StateTracker
	}
	return m, cmd
}

func (m *Model) saveNote(id, day, text string) {
	h, ok := models.Find(m.habits, id)
	if !ok {
		return
	}
	habits, err := models.Replace(m.habits, models.SetNote(h, day, text))
	if err != nil {
		logger.Warn("Failed to save note", "id", id, "error", err)
		return
	}
	m.commit(habits)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Confirm):
		m.beforeDelete()
		habits, err := models.Remove(m.habits, m.habitToDeleteID)
		if err != nil {
			logger.Warn("Failed to delete habit", "id", m.habitToDeleteID, "error", err)
		} else if m.commit(habits) {
			m.status = fmt.Sprintf("Deleted %q", m.habitToDeleteName)
		}
		m.habitToDeleteID, m.habitToDeleteName = "", ""
		m.state = StateTracker
	case key.Matches(k, m.keys.Cancel):
		m.habitToDeleteID, m.habitToDeleteName = "", ""
		m.state = StateTracker
	}
	return m, nil
}
