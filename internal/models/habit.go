package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategoryLearning     Category = "learning"
	CategoryMindfulness  Category = "mindfulness"
	CategoryOther        Category = "other"

	// DefaultCategory is assigned when a habit is created without one
	DefaultCategory = CategoryProductivity
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryProductivity,
	CategoryLearning,
	CategoryMindfulness,
	CategoryOther,
}

var ErrEmptyName = errors.New("habit name cannot be empty")

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts user input to a Category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return DefaultCategory, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (expected one of health, productivity, learning, mindfulness, other)", s)
	}
	return c, nil
}

// Habit represents a recurring practice with a sparse per-day history.
// Logs only holds completed days; Notes is keyed independently.
type Habit struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	Logs        map[string]bool   `json:"logs"`
	Notes       map[string]string `json:"notes"`
	Category    Category          `json:"category"`
}

// GenerateID returns a new random habit identifier.
func GenerateID() string {
	return uuid.New().String()
}

// NewHabit creates a habit with empty logs and notes.
func NewHabit(name, description string, category Category, now time.Time) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrEmptyName
	}
	if category == "" {
		category = DefaultCategory
	}
	if !category.Valid() {
		return Habit{}, fmt.Errorf("invalid category %q", category)
	}

	return Habit{
		ID:          GenerateID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		Logs:        make(map[string]bool),
		Notes:       make(map[string]string),
		Category:    category,
	}, nil
}

// Normalize fills defaults for records written by older versions:
// missing maps become empty and unknown categories become "other".
// False-valued log entries are dropped so Logs stays sparse.
func Normalize(h Habit) Habit {
	logs := make(map[string]bool, len(h.Logs))
	for day, done := range h.Logs {
		if done {
			logs[day] = true
		}
	}
	h.Logs = logs

	if h.Notes == nil {
		h.Notes = make(map[string]string)
	}
	if !h.Category.Valid() {
		h.Category = CategoryOther
	}
	return h
}

// IsDone reports whether the habit was completed on the given day.
func (h Habit) IsDone(day string) bool {
	return h.Logs[day]
}

// Note returns the note for a day, if any.
func (h Habit) Note(day string) (string, bool) {
	note, ok := h.Notes[day]
	return note, ok && note != ""
}

// CompletionCount returns the number of completed days.
func (h Habit) CompletionCount() int {
	count := 0
	for _, done := range h.Logs {
		if done {
			count++
		}
	}
	return count
}

// ToggleLog returns a copy of h with the completion for day flipped.
// Un-completing removes the key instead of storing false.
func ToggleLog(h Habit, day string) Habit {
	logs := make(map[string]bool, len(h.Logs)+1)
	for k, v := range h.Logs {
		logs[k] = v
	}
	if logs[day] {
		delete(logs, day)
	} else {
		logs[day] = true
	}
	h.Logs = logs
	return h
}

// SetNote returns a copy of h with the note for day replaced.
// A blank note removes the entry.
func SetNote(h Habit, day, text string) Habit {
	notes := make(map[string]string, len(h.Notes)+1)
	for k, v := range h.Notes {
		notes[k] = v
	}
	text = strings.TrimSpace(text)
	if text == "" {
		delete(notes, day)
	} else {
		notes[day] = text
	}
	h.Notes = notes
	return h
}
