package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Point is one bucket of a rate series.
type Point struct {
	Key   string `json:"key"`   // YYYY-MM-DD for days, YYYY-MM for months
	Label string `json:"label"` // short chart label, e.g. "Jan 2" or "Jan"
	Rate  int    `json:"rate"`  // whole percent, 0-100
}

// WeeklySummary is the per-habit digest handed to the coach.
type WeeklySummary struct {
	Name                 string          `json:"name"`
	Category             models.Category `json:"category"`
	Last7DaysCompletions int             `json:"last7DaysCompletions"`
	Consistency          string          `json:"consistency"`
	Notes                string          `json:"notes"`
}

// Percent returns num/den as a whole percentage, rounding halves away from zero.
// A zero or negative denominator yields 0.
func Percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// DailyRate returns the share of habits completed on the given day.
func DailyRate(habits []models.Habit, day string) int {
	completed := 0
	for _, h := range habits {
		if h.IsDone(day) {
			completed++
		}
	}
	return Percent(completed, len(habits))
}

// WindowedDailyRates returns the daily rate for the days consecutive days ending
// at anchor (inclusive), oldest first.
func WindowedDailyRates(habits []models.Habit, days int, anchor time.Time) []Point {
	if days <= 0 {
		return []Point{}
	}

	points := make([]Point, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := utils.AddDays(anchor, -i)
		key := utils.ToDateKey(d)
		points = append(points, Point{
			Key:   key,
			Label: d.Format(constants.DayLabelFormat),
			Rate:  DailyRate(habits, key),
		})
	}
	return points
}

// MonthlyRate returns completed habit-days over possible habit-days for a month.
func MonthlyRate(habits []models.Habit, year int, month time.Month) int {
	completed, possible := monthTotals(habits, year, month)
	return Percent(completed, possible)
}

func monthTotals(habits []models.Habit, year int, month time.Month) (completed, possible int) {
	days := utils.DaysInMonth(year, month)
	for day := 1; day <= days; day++ {
		key := utils.ToDateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		for _, h := range habits {
			possible++
			if h.IsDone(key) {
				completed++
			}
		}
	}
	return completed, possible
}

// MonthlyRatesWindow returns the monthly rate for the months consecutive
// calendar months ending at anchor's month, oldest first.
func MonthlyRatesWindow(habits []models.Habit, months int, anchor time.Time) []Point {
	if months <= 0 {
		return []Point{}
	}

	first := utils.FirstOfMonth(anchor)
	points := make([]Point, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		points = append(points, Point{
			Key:   fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())),
			Label: m.Format(constants.MonthLabelFormat),
			Rate:  MonthlyRate(habits, m.Year(), m.Month()),
		})
	}
	return points
}

// TotalCompletions counts completed days across all habits. Notes are ignored.
func TotalCompletions(habits []models.Habit) int {
	total := 0
	for _, h := range habits {
		total += h.CompletionCount()
	}
	return total
}

// AverageRate returns the rounded mean rate of a series, 0 when empty.
func AverageRate(points []Point) int {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Rate
	}
	return int(math.Round(float64(sum) / float64(len(points))))
}

// PerHabitWeeklySummary digests the 7 days ending at ref for every habit.
// Notes are rendered as "[YYYY-MM-DD]: text" oldest first and joined with "; ".
func PerHabitWeeklySummary(habits []models.Habit, ref time.Time) []WeeklySummary {
	window := make([]string, 0, constants.CoachWindowDays)
	for i := constants.CoachWindowDays - 1; i >= 0; i-- {
		window = append(window, utils.ToDateKey(utils.AddDays(ref, -i)))
	}

	summaries := make([]WeeklySummary, 0, len(habits))
	for _, h := range habits {
		completions := 0
		var notes []string
		for _, day := range window {
			if h.IsDone(day) {
				completions++
			}
			if note, ok := h.Note(day); ok {
				notes = append(notes, fmt.Sprintf("[%s]: %s", day, note))
			}
		}

		summaries = append(summaries, WeeklySummary{
			Name:                 h.Name,
			Category:             h.Category,
			Last7DaysCompletions: completions,
			Consistency:          fmt.Sprintf("%d%%", Percent(completions, constants.CoachWindowDays)),
			Notes:                strings.Join(notes, "; "),
		})
	}
	return summaries
}
