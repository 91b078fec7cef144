package export

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

type RangePreset string

const (
	RangeCurrentMonth RangePreset = "current_month"
	RangeLast30       RangePreset = "last_30"
	RangeAllTime      RangePreset = "all_time"
	RangeCustom       RangePreset = "custom"
)

// Range is an inclusive export window, normalized to whole local days.
type Range struct {
	Start time.Time
	End   time.Time
}

// ResolveRange turns a preset into concrete bounds relative to now.
// For custom ranges, from/to are YYYY-MM-DD and either may be empty (defaults to now).
func ResolveRange(preset RangePreset, habits []models.Habit, now time.Time, from, to string) (Range, error) {
	start, end := now, now

	switch preset {
	case RangeCurrentMonth, "":
		start = utils.FirstOfMonth(now)
	case RangeLast30:
		start = utils.AddDays(now, -constants.DefaultLookback)
	case RangeAllTime:
		if earliest, ok := EarliestActivity(habits, now.Location()); ok {
			start = earliest
		} else {
			start = utils.AddDays(now, -constants.DefaultLookback)
		}
	case RangeCustom:
		if from != "" {
			t, err := utils.ParseDateKey(from, now.Location())
			if err != nil {
				return Range{}, fmt.Errorf("invalid --from: %w", err)
			}
			start = t
		}
		if to != "" {
			t, err := utils.ParseDateKey(to, now.Location())
			if err != nil {
				return Range{}, fmt.Errorf("invalid --to: %w", err)
			}
			end = t
		}
	default:
		return Range{}, fmt.Errorf("unknown range %q (expected current_month, last_30, all_time or custom)", preset)
	}

	return Range{Start: utils.StartOfDay(start), End: utils.EndOfDay(end)}, nil
}

// EarliestActivity returns the earliest of every log date and creation instant.
// Unparseable log keys are skipped. ok is false for an empty collection.
func EarliestActivity(habits []models.Habit, loc *time.Location) (earliest time.Time, ok bool) {
	consider := func(t time.Time) {
		if !ok || t.Before(earliest) {
			earliest = t
			ok = true
		}
	}

	for _, h := range habits {
		if !h.CreatedAt.IsZero() {
			consider(h.CreatedAt.In(loc))
		}
		for day, done := range h.Logs {
			if !done {
				continue
			}
			if t, err := utils.ParseDateKey(day, loc); err == nil {
				consider(t)
			}
		}
	}
	return earliest, ok
}
