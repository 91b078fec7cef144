package models

import (
	"fmt"
	"strings"
)

// The collection helpers never modify their input slice; each returns a new
// collection so callers can persist it as a whole.

// Add appends a habit to the collection.
func Add(habits []Habit, h Habit) []Habit {
	out := make([]Habit, 0, len(habits)+1)
	out = append(out, habits...)
	return append(out, h)
}

// Replace swaps the habit with the same ID for h.
func Replace(habits []Habit, h Habit) ([]Habit, error) {
	out := make([]Habit, len(habits))
	found := false
	for i, existing := range habits {
		if existing.ID == h.ID {
			out[i] = h
			found = true
		} else {
			out[i] = existing
		}
	}
	if !found {
		return nil, fmt.Errorf("habit not found: %s", h.ID)
	}
	return out, nil
}

// Remove deletes the habit with the given ID.
func Remove(habits []Habit, id string) ([]Habit, error) {
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if h.ID != id {
			out = append(out, h)
		}
	}
	if len(out) == len(habits) {
		return nil, fmt.Errorf("habit not found: %s", id)
	}
	return out, nil
}

// Find returns the habit with the given ID.
func Find(habits []Habit, id string) (Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// FindByName returns the first habit whose name matches, ignoring case.
func FindByName(habits []Habit, name string) (Habit, bool) {
	name = strings.TrimSpace(name)
	for _, h := range habits {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Habit{}, false
}

// NormalizeAll applies Normalize to every habit.
func NormalizeAll(habits []Habit) []Habit {
	out := make([]Habit, len(habits))
	for i, h := range habits {
		out[i] = Normalize(h)
	}
	return out
}
