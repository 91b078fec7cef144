package stats

import (
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// Overview is everything the stats screen shows.
type Overview struct {
	HabitCount       int     `json:"habitCount"`
	TotalCompletions int     `json:"totalCompletions"`
	AverageRate      int     `json:"averageRate"`
	Daily            []Point `json:"daily"`
	Monthly          []Point `json:"monthly"`
}

// NewOverview builds the stats screen payload for the given window sizes.
// Non-positive sizes fall back to 14 days and 6 months.
func NewOverview(habits []models.Habit, now time.Time, days, months int) Overview {
	if days <= 0 {
		days = constants.DailyWindowDays
	}
	if months <= 0 {
		months = constants.MonthlyWindowMonths
	}

	daily := WindowedDailyRates(habits, days, now)
	return Overview{
		HabitCount:       len(habits),
		TotalCompletions: TotalCompletions(habits),
		AverageRate:      AverageRate(daily),
		Daily:            daily,
		Monthly:          MonthlyRatesWindow(habits, months, now),
	}
}
