package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateTracker:
		content = docStyle.Render(m.tracker.View())
	case StateStats:
		content = docStyle.Render(m.overview.View())
	case StateCoach:
		content = docStyle.Render(m.viewCoach())
	case StateAddHabit, StateEditNote:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) activeTab() SessionState {
	if m.state < tabCount {
		return m.state
	}
	return StateTracker
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.activeTab() == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewCoach() string {
	var body string
	switch {
	case len(m.conversation.Messages) == 0 && !m.thinking && len(m.habits) == 0:
		body = statusStyle.Render(constants.CoachNoHabitsMessage)
	default:
		body = m.chat.View()
	}
	if m.thinking {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.spinner.View()+" Thinking...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.input.View())
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and all of its history?", m.habitToDeleteName)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
