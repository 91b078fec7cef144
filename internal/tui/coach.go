package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/coach"
	"github.com/julianstephens/habitlog/internal/constants"
)

type coachReplyMsg struct {
	reply string
	err   error
}

// enterCoach focuses the input and requests the opening analysis once.
func (m *Model) enterCoach() tea.Cmd {
	focus := m.input.Focus()
	if m.thinking || !m.conversation.NeedsInitialAnalysis(m.habits) {
		return tea.Batch(focus, textinput.Blink)
	}
	m.thinking = true
	m.renderChat()
	return tea.Batch(focus, textinput.Blink, m.spinner.Tick, m.ask(""))
}

func (m Model) updateCoach(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case k.Type == tea.KeyTab:
			return m.switchTab(1)
		case k.Type == tea.KeyShiftTab:
			return m.switchTab(-1)
		case k.Type == tea.KeyEsc:
			m.input.Blur()
			m.state = StateTracker
			return m, nil
		case k.Type == tea.KeyEnter:
			cmd := m.send()
			return m, cmd
		case k.Type == tea.KeyUp, k.Type == tea.KeyDown, k.Type == tea.KeyPgUp, k.Type == tea.KeyPgDown:
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send posts the typed question. Input is ignored while a reply is pending.
func (m *Model) send() tea.Cmd {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.thinking {
		return nil
	}
	m.input.Reset()
	m.conversation.AddUser(query)
	m.thinking = true
	m.renderChat()
	return tea.Batch(m.spinner.Tick, m.ask(query))
}

// ask runs the coach request off the update loop.
func (m Model) ask(query string) tea.Cmd {
	c := m.coach
	habits := m.habits
	return func() tea.Msg {
		if c == nil {
			return coachReplyMsg{reply: constants.CoachMissingKeyMessage}
		}
		reply, err := c.TryAsk(context.Background(), habits, query)
		return coachReplyMsg{reply: reply, err: err}
	}
}

func (m *Model) handleCoachReply(msg coachReplyMsg) {
	if errors.Is(msg.err, coach.ErrBusy) {
		m.status = "The coach is still answering the previous question."
		return
	}
	m.thinking = false
	m.conversation.AddAssistant(msg.reply)
	m.renderChat()
}

func (m *Model) renderChat() {
	wrap := lipgloss.NewStyle()
	if m.chat.Width > 0 {
		wrap = wrap.Width(m.chat.Width)
	}

	var b strings.Builder
	for i, msg := range m.conversation.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == coach.RoleUser {
			b.WriteString(userStyle.Render("You") + "\n")
		} else {
			b.WriteString(coachStyle.Render("Coach") + "\n")
		}
		b.WriteString(wrap.Render(msg.Content))
	}
	m.chat.SetContent(b.String())
	m.chat.GotoBottom()
}
