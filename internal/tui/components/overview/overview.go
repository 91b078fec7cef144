package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/stats"
)

const (
	labelWidth  = 8
	minBarWidth = 10
	maxBarWidth = 50
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(labelWidth)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	emptyBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)
)

// Model renders the aggregate charts in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	Overview *stats.Overview
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Overview == nil {
		return "No statistics yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetOverview(o stats.Overview) {
	m.Overview = &o
	m.Render()
}

func (m *Model) Render() {
	if m.Overview == nil {
		m.viewport.SetContent("No statistics yet.")
		return
	}
	o := m.Overview
	width := m.barWidth()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Overview") + "\n")
	fmt.Fprintf(&b, "Habits: %s   Completions: %s   Average: %s\n\n",
		valueStyle.Render(fmt.Sprint(o.HabitCount)),
		valueStyle.Render(fmt.Sprint(o.TotalCompletions)),
		valueStyle.Render(fmt.Sprintf("%d%%", o.AverageRate)),
	)

	b.WriteString(headerStyle.Render(fmt.Sprintf("Daily completion (last %d days)", len(o.Daily))) + "\n")
	for _, p := range o.Daily {
		b.WriteString(renderRow(p, width))
	}

	b.WriteString("\n" + headerStyle.Render(fmt.Sprintf("Monthly completion (last %d months)", len(o.Monthly))) + "\n")
	for _, p := range o.Monthly {
		b.WriteString(renderRow(p, width))
	}
	m.viewport.SetContent(b.String())
}

func (m Model) barWidth() int {
	w := m.width - labelWidth - 8
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

func renderRow(p stats.Point, width int) string {
	return fmt.Sprintf("%s %s %3d%%\n", labelStyle.Render(p.Label), Bar(p.Rate, width), p.Rate)
}

// Bar draws a horizontal bar of the given width for a 0-100 rate.
func Bar(rate, width int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	filled := rate * width / 100
	return barStyle.Render(strings.Repeat("█", filled)) + emptyBarStyle.Render(strings.Repeat("░", width-filled))
}
