package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

const (
	csvHeader       = "Date,Habit Name,Status,Note"
	StatusCompleted = "Completed"
	StatusMissed    = "Missed"
)

// ToCSV renders one row per (habit, day), habits in collection order and days
// newest first. Name and note are always quoted; status and date never are.
func ToCSV(habits []models.Habit, start, end time.Time) string {
	days := EnumerateDateKeys(utils.StartOfDay(start), utils.EndOfDay(end))

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for _, h := range habits {
		name := quote(h.Name)
		for _, day := range days {
			status := StatusMissed
			if h.IsDone(day) {
				status = StatusCompleted
			}
			note, _ := h.Note(day)
			fmt.Fprintf(&b, "%s,%s,%s,%s\n", day, name, status, quote(note))
		}
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ParseCSVStatus reads a CSV export back into habit name -> day -> completed.
// Missed rows are present with false so callers can tell them from absent days.
func ParseCSVStatus(r io.Reader) (map[string]map[string]bool, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv document")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if strings.Join(header, ",") != csvHeader {
		return nil, fmt.Errorf("unexpected csv header: %q", strings.Join(header, ","))
	}

	result := make(map[string]map[string]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		day, name, status := record[0], record[1], record[2]
		if !utils.ValidateDateKey(day) {
			return nil, fmt.Errorf("invalid date in csv row: %q", day)
		}

		var done bool
		switch status {
		case StatusCompleted:
			done = true
		case StatusMissed:
			done = false
		default:
			return nil, fmt.Errorf("invalid status in csv row: %q", status)
		}

		if result[name] == nil {
			result[name] = make(map[string]bool)
		}
		result[name][day] = done
	}
	return result, nil
}
