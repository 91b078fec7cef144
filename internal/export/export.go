package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// EnumerateDateKeys returns every calendar day in [start, end], newest first.
// Both bounds are compared at day granularity; start after end yields no days.
func EnumerateDateKeys(start, end time.Time) []string {
	current := utils.StartOfDay(start)
	last := utils.StartOfDay(end.In(start.Location()))

	var keys []string
	for !current.After(last) {
		keys = append(keys, utils.ToDateKey(current))
		current = utils.AddDays(current, 1)
	}

	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	if keys == nil {
		return []string{}
	}
	return keys
}

// ToMarkdown renders a checklist document for the range, one section per habit.
func ToMarkdown(habits []models.Habit, start, end, now time.Time) string {
	start = utils.StartOfDay(start)
	end = utils.EndOfDay(end)
	days := EnumerateDateKeys(start, end)

	var b strings.Builder
	fmt.Fprintf(&b, "# Habit Tracker Summary (Generated %s)\n", utils.ToDateKey(now))
	fmt.Fprintf(&b, "Range: %s to %s\n\n", utils.ToDateKey(start), utils.ToDateKey(end))

	if len(habits) == 0 {
		b.WriteString("No habits found.")
		return b.String()
	}

	for _, h := range habits {
		fmt.Fprintf(&b, "## %s\n", h.Name)
		if h.Description != "" {
			fmt.Fprintf(&b, "> %s\n", h.Description)
		}
		b.WriteString("\n**Checklist:**\n")

		for _, day := range days {
			mark := " "
			if h.IsDone(day) {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s", mark, day)
			if note, ok := h.Note(day); ok {
				fmt.Fprintf(&b, " — *%s*", note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n---\n")
	}
	return b.String()
}

// ToJSON returns the full-fidelity backup document for the collection.
func ToJSON(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.MarshalIndent(habits, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}

// Filename builds "<prefix>-<YYYY-MM-DD>_<HH-MM>.<ext>" from the local time.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s_%s.%s", prefix, utils.ToDateKey(now), now.Format(constants.TimeFormat), strings.TrimPrefix(ext, "."))
}

// WriteFile writes an export document into dir, creating it if needed,
// and returns the full path.
func WriteFile(dir, name string, content []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
