package habits

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "habits.json")

	store := storage.NewFileStore(dataPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := cli.NewContext(&config.Config{Data: dataPath}, store, dir)
	var out bytes.Buffer
	ctx.Out = &out
	ctx.Now = func() time.Time { return fixedNow }
	return ctx, &out
}

func addHabit(t *testing.T, ctx *cli.Context, name string) {
	t.Helper()
	cmd := &HabitAddCmd{Name: name, Category: "health"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add %q: %v", name, err)
	}
}

func mustFind(t *testing.T, ctx *cli.Context, name string) models.Habit {
	t.Helper()
	h, err := cli.FindHabit(ctx.Habits(), name)
	if err != nil {
		t.Fatalf("FindHabit(%q): %v", name, err)
	}
	return h
}

func TestHabitAdd(t *testing.T) {
	ctx, out := setupContext(t)

	cmd := &HabitAddCmd{Name: "  Read  ", Description: "Before bed", Category: "Learning"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Added habit: Read (learning)") {
		t.Errorf("unexpected output: %q", out.String())
	}

	h := mustFind(t, ctx, "read")
	if h.Description != "Before bed" || h.Category != models.CategoryLearning {
		t.Errorf("stored habit = %+v", h)
	}
	if !h.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", h.CreatedAt, fixedNow)
	}

	if err := (&HabitAddCmd{Name: "READ", Category: "health"}).Run(ctx); err == nil {
		t.Error("expected duplicate name error")
	}
	if err := (&HabitAddCmd{Name: "Walk", Category: "sports"}).Run(ctx); err == nil {
		t.Error("expected invalid category error")
	}
	if err := (&HabitAddCmd{Name: "   ", Category: "health"}).Run(ctx); err == nil {
		t.Error("expected empty name error")
	}
	if n := len(ctx.Habits()); n != 1 {
		t.Errorf("habits = %d, want 1", n)
	}
}

func TestHabitToggle(t *testing.T) {
	ctx, out := setupContext(t)
	addHabit(t, ctx, "Read")

	if err := (&HabitToggleCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !mustFind(t, ctx, "Read").IsDone("2024-03-15") {
		t.Error("expected today to be completed")
	}
	if !strings.Contains(out.String(), `Marked habit "Read" for 2024-03-15`) {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&HabitToggleCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if mustFind(t, ctx, "Read").IsDone("2024-03-15") {
		t.Error("second toggle should clear the completion")
	}
	if !strings.Contains(out.String(), `Unmarked habit "Read"`) {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&HabitToggleCmd{Name: "Read", Date: "2024-01-02"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !mustFind(t, ctx, "Read").IsDone("2024-01-02") {
		t.Error("expected explicit date to be completed")
	}

	tests := []struct {
		name string
		cmd  HabitToggleCmd
	}{
		{"bad date", HabitToggleCmd{Name: "Read", Date: "01/02/2024"}},
		{"unknown habit", HabitToggleCmd{Name: "Run"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHabitNote(t *testing.T) {
	ctx, out := setupContext(t)
	addHabit(t, ctx, "Read")

	if err := (&HabitNoteCmd{Name: "Read", Text: []string{"felt", "sick"}, Date: "2024-03-14"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if note, _ := mustFind(t, ctx, "Read").Note("2024-03-14"); note != "felt sick" {
		t.Errorf("note = %q, want %q", note, "felt sick")
	}
	if mustFind(t, ctx, "Read").IsDone("2024-03-14") {
		t.Error("a note must not mark the day completed")
	}

	if err := (&HabitNoteCmd{Name: "Read", Date: "2024-03-14"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := mustFind(t, ctx, "Read").Note("2024-03-14"); ok {
		t.Error("empty text should clear the note")
	}
	if !strings.Contains(out.String(), `Cleared note for "Read" on 2024-03-14`) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHabitEdit(t *testing.T) {
	ctx, _ := setupContext(t)
	addHabit(t, ctx, "Read")
	addHabit(t, ctx, "Run")

	original := mustFind(t, ctx, "Read")

	cmd := &HabitEditCmd{Name: "read", NewName: "Read more", Description: "30 pages", Category: "learning"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	h := mustFind(t, ctx, "Read more")
	if h.ID != original.ID {
		t.Error("edit must keep the habit id")
	}
	if h.Description != "30 pages" || h.Category != models.CategoryLearning {
		t.Errorf("edited habit = %+v", h)
	}

	if err := (&HabitEditCmd{Name: "Read more", ClearDescription: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if mustFind(t, ctx, "Read more").Description != "" {
		t.Error("description should be cleared")
	}

	tests := []struct {
		name string
		cmd  HabitEditCmd
	}{
		{"nothing to change", HabitEditCmd{Name: "Run"}},
		{"rename clash", HabitEditCmd{Name: "Run", NewName: "read more"}},
		{"bad category", HabitEditCmd{Name: "Run", Category: "sports"}},
		{"unknown habit", HabitEditCmd{Name: "Swim", NewName: "Dive"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHabitDelete(t *testing.T) {
	ctx, out := setupContext(t)
	addHabit(t, ctx, "Read")
	addHabit(t, ctx, "Run")

	orig := confirmFunc
	t.Cleanup(func() { confirmFunc = orig })

	var asked int
	confirmFunc = func(title, description string) (bool, error) {
		asked++
		return false, nil
	}
	if err := (&HabitDeleteCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if asked != 1 || len(ctx.Habits()) != 2 {
		t.Fatalf("declined delete: asked=%d habits=%d", asked, len(ctx.Habits()))
	}
	if !strings.Contains(out.String(), "Delete cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	confirmFunc = func(title, description string) (bool, error) { return true, nil }
	if err := (&HabitDeleteCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := cli.FindHabit(ctx.Habits(), "Read"); err == nil {
		t.Error("habit should be deleted")
	}

	backups, err := os.ReadDir(filepath.Join(ctx.StateDir, constants.BackupDirName))
	if err != nil || len(backups) == 0 {
		t.Fatalf("expected an automatic backup before delete, err=%v", err)
	}

	confirmFunc = func(title, description string) (bool, error) {
		t.Error("--yes must skip confirmation")
		return false, nil
	}
	if err := (&HabitDeleteCmd{Name: "Run", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(ctx.Habits()) != 0 {
		t.Error("expected every habit deleted")
	}

	if err := (&HabitDeleteCmd{Name: "Run", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error deleting a missing habit")
	}
}

func TestHabitTodayAndList(t *testing.T) {
	ctx, out := setupContext(t)

	if err := (&HabitTodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	addHabit(t, ctx, "Read")
	addHabit(t, ctx, "Run")
	if err := (&HabitToggleCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&HabitNoteCmd{Name: "Run", Text: []string{"5k"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&HabitTodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Habits for 2024-03-15:", "[ ] Read", "[x] Run  (5k)", "Recorded: 1/2"} {
		if !strings.Contains(got, want) {
			t.Errorf("today output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Run") || !strings.Contains(out.String(), "1 completions") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}

func TestHabitLog(t *testing.T) {
	ctx, out := setupContext(t)
	addHabit(t, ctx, "Read")
	addHabit(t, ctx, "A very long habit name indeed")
	if err := (&HabitToggleCmd{Name: "Read", Date: "2024-03-14"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&HabitLogCmd{Days: 3, Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "Read") || strings.Count(last, "x") != 1 || strings.Count(last, ".") != 2 {
		t.Errorf("unexpected log row: %q", last)
	}
	if !strings.Contains(out.String(), "03/13") || !strings.Contains(out.String(), "03/15") {
		t.Errorf("missing date headers:\n%s", out.String())
	}

	out.Reset()
	if err := (&HabitLogCmd{Days: 2}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "A very long habit...") {
		t.Errorf("long names should be truncated:\n%s", out.String())
	}

	if err := (&HabitLogCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for --days 0")
	}
	if err := (&HabitLogCmd{Days: 3, Habit: "Swim"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}
