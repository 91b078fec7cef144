package reports

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/stats"
)

const barWidth = 30

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type StatsCmd struct {
	Days   int `help:"Days in the daily completion chart." default:"14"`
	Months int `help:"Months in the monthly completion chart." default:"6"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Months < 1 {
		return fmt.Errorf("--days and --months must be at least 1")
	}

	overview := stats.NewOverview(ctx.Habits(), ctx.Now(), c.Days, c.Months)

	ctx.Println(headerStyle.Render("Overview"))
	ctx.Printf("  Habits:            %d\n", overview.HabitCount)
	ctx.Printf("  Total completions: %d\n", overview.TotalCompletions)
	ctx.Printf("  Average (%dd):     %d%%\n\n", c.Days, overview.AverageRate)

	ctx.Println(headerStyle.Render(fmt.Sprintf("Daily completion (last %d days)", c.Days)))
	for _, p := range overview.Daily {
		ctx.Printf("  %-7s %s %3d%%\n", p.Label, renderBar(p.Rate), p.Rate)
	}
	ctx.Println()

	ctx.Println(headerStyle.Render(fmt.Sprintf("Monthly completion (last %d months)", c.Months)))
	for _, p := range overview.Monthly {
		ctx.Printf("  %-7s %s %3d%%\n", p.Label, renderBar(p.Rate), p.Rate)
	}
	return nil
}

// renderBar draws a fixed-width horizontal bar for a 0-100 rate.
func renderBar(rate int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	filled := rate * barWidth / 100
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
}
