package models

import (
	"testing"
	"time"
)

func testCollection(t *testing.T) []Habit {
	t.Helper()
	var habits []Habit
	for _, name := range []string{"Read", "Run", "Meditate"} {
		h, err := NewHabit(name, "", "", time.Now())
		if err != nil {
			t.Fatalf("NewHabit(%q) error = %v", name, err)
		}
		habits = Add(habits, h)
	}
	return habits
}

func TestAddKeepsOrder(t *testing.T) {
	habits := testCollection(t)
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}
	if habits[0].Name != "Read" || habits[2].Name != "Meditate" {
		t.Errorf("unexpected order: %q, %q", habits[0].Name, habits[2].Name)
	}
}

func TestReplace(t *testing.T) {
	habits := testCollection(t)
	updated := habits[1]
	updated.Name = "Run 5k"

	out, err := Replace(habits, updated)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if out[1].Name != "Run 5k" {
		t.Errorf("expected replaced name, got %q", out[1].Name)
	}
	if habits[1].Name != "Run" {
		t.Error("Replace modified the input collection")
	}

	if _, err := Replace(habits, Habit{ID: "missing"}); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestRemove(t *testing.T) {
	habits := testCollection(t)

	out, err := Remove(habits, habits[0].ID)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(out) != 2 || out[0].Name != "Run" {
		t.Errorf("unexpected collection after remove: %+v", out)
	}
	if len(habits) != 3 {
		t.Error("Remove modified the input collection")
	}

	if _, err := Remove(habits, "missing"); err == nil {
		t.Error("expected error for unknown ID")
	}
}

func TestFind(t *testing.T) {
	habits := testCollection(t)

	if h, ok := Find(habits, habits[2].ID); !ok || h.Name != "Meditate" {
		t.Errorf("Find() = %+v, %v", h, ok)
	}
	if h, ok := FindByName(habits, "  run "); !ok || h.ID != habits[1].ID {
		t.Errorf("FindByName() = %+v, %v", h, ok)
	}
	if _, ok := FindByName(habits, "Swim"); ok {
		t.Error("FindByName() found a habit that does not exist")
	}
}
