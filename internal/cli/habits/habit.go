package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// confirmFunc asks a yes/no question on the terminal.
var confirmFunc = func(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		WithTheme(huh.ThemeDracula()).
		Run()
	return confirmed, err
}

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Note   HabitNoteCmd   `cmd:"" help:"Set or clear the note for a day."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's name, description or category."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit status."`
	Log    HabitLogCmd    `cmd:"" help:"Show habit log (ASCII history)."`
}

// resolveDay returns today's key for an empty date, otherwise validates it.
func resolveDay(ctx *cli.Context, date string) (string, error) {
	if date == "" {
		return utils.ToDateKey(ctx.Now()), nil
	}
	if !utils.ValidateDateKey(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description." short:"d"`
	Category    string `help:"Category: health, productivity, learning, mindfulness or other." short:"c" default:"productivity"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	habit, err := models.NewHabit(c.Name, c.Description, category, ctx.Now())
	if err != nil {
		return err
	}

	err = ctx.Mutate(func(habits []models.Habit) ([]models.Habit, error) {
		if _, ok := models.FindByName(habits, habit.Name); ok {
			return nil, fmt.Errorf("habit with name %q already exists", habit.Name)
		}
		return models.Add(habits, habit), nil
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s)\n", habit.Name, habit.Category)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		ctx.Printf("%-24s %-13s %4d completions\n", h.Name, h.Category, h.CompletionCount())
		if h.Description != "" {
			ctx.Printf("  %s\n", h.Description)
		}
	}
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	day, err := resolveDay(ctx, c.Date)
	if err != nil {
		return err
	}

	var done bool
	var name string
	err = ctx.Mutate(func(habits []models.Habit) ([]models.Habit, error) {
		h, err := cli.FindHabit(habits, c.Name)
		if err != nil {
			return nil, err
		}
		h = models.ToggleLog(h, day)
		done, name = h.IsDone(day), h.Name
		return models.Replace(habits, h)
	})
	if err != nil {
		return err
	}

	if done {
		ctx.Printf("Marked habit %q for %s\n", name, day)
	} else {
		ctx.Printf("Unmarked habit %q for %s\n", name, day)
	}
	return nil
}

type HabitNoteCmd struct {
	Name string   `arg:"" help:"Habit name."`
	Text []string `arg:"" optional:"" help:"Note text. Omit to clear the note."`
	Date string   `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitNoteCmd) Run(ctx *cli.Context) error {
	day, err := resolveDay(ctx, c.Date)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Text, " "))

	err = ctx.Mutate(func(habits []models.Habit) ([]models.Habit, error) {
		h, err := cli.FindHabit(habits, c.Name)
		if err != nil {
			return nil, err
		}
		return models.Replace(habits, models.SetNote(h, day, text))
	})
	if err != nil {
		return err
	}

	if text == "" {
		ctx.Printf("Cleared note for %q on %s\n", c.Name, day)
	} else {
		ctx.Printf("Saved note for %q on %s\n", c.Name, day)
	}
	return nil
}

type HabitEditCmd struct {
	Name             string `arg:"" help:"Habit name."`
	NewName          string `name:"rename" help:"New name."`
	Description      string `help:"New description."`
	ClearDescription bool   `help:"Remove the description."`
	Category         string `help:"New category."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if c.NewName == "" && c.Description == "" && !c.ClearDescription && c.Category == "" {
		return fmt.Errorf("nothing to change: pass --rename, --description, --clear-description or --category")
	}

	var updated models.Habit
	err := ctx.Mutate(func(habits []models.Habit) ([]models.Habit, error) {
		h, err := cli.FindHabit(habits, c.Name)
		if err != nil {
			return nil, err
		}

		if name := strings.TrimSpace(c.NewName); name != "" {
			if other, ok := models.FindByName(habits, name); ok && other.ID != h.ID {
				return nil, fmt.Errorf("habit with name %q already exists", name)
			}
			h.Name = name
		}
		if c.ClearDescription {
			h.Description = ""
		} else if c.Description != "" {
			h.Description = strings.TrimSpace(c.Description)
		}
		if c.Category != "" {
			category, err := models.ParseCategory(c.Category)
			if err != nil {
				return nil, err
			}
			h.Category = category
		}

		updated = h
		return models.Replace(habits, h)
	})
	if err != nil {
		return err
	}

	ctx.Printf("Updated habit: %s (%s)\n", updated.Name, updated.Category)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := cli.FindHabit(ctx.Habits(), c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed, err := confirmFunc(
			fmt.Sprintf("Delete habit %q?", habit.Name),
			fmt.Sprintf("%d completions and all notes will be removed.", habit.CompletionCount()),
		)
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	err = ctx.Mutate(func(habits []models.Habit) ([]models.Habit, error) {
		return models.Remove(habits, habit.ID)
	})
	if err != nil {
		return err
	}

	ctx.Printf("Deleted habit: %s\n", habit.Name)
	ctx.Printf("(A backup was saved. Use '%s backup list' to find it)\n", constants.AppName)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	habits := ctx.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today := utils.ToDateKey(ctx.Now())
	ctx.Printf("Habits for %s:\n\n", today)

	recorded := 0
	for _, h := range habits {
		status := "[ ]"
		if h.IsDone(today) {
			status = "[x]"
			recorded++
		}
		ctx.Printf("%s %s", status, h.Name)
		if note, ok := h.Note(today); ok {
			ctx.Printf("  (%s)", note)
		}
		ctx.Println()
	}

	ctx.Printf("\nRecorded: %d/%d\n", recorded, len(habits))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	habits := ctx.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	if c.Habit != "" {
		h, err := cli.FindHabit(habits, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}

	end := ctx.Now()
	start := utils.AddDays(end, -(c.Days - 1))

	ctx.Printf("Habit log (last %d days):\n\n", c.Days)

	const nameWidth = 20
	ctx.Printf("%-*s", nameWidth, "Habit")
	for i := 0; i < c.Days; i++ {
		ctx.Printf(" %5s", utils.AddDays(start, i).Format("01/02"))
	}
	ctx.Println()
	ctx.Println(strings.Repeat("-", nameWidth) + strings.Repeat("------", c.Days))

	for _, h := range habits {
		name := h.Name
		if len([]rune(name)) > nameWidth {
			name = string([]rune(name)[:nameWidth-3]) + "..."
		}
		ctx.Printf("%-*s", nameWidth, name)

		for i := 0; i < c.Days; i++ {
			if h.IsDone(utils.ToDateKey(utils.AddDays(start, i))) {
				ctx.Printf("  x   ")
			} else {
				ctx.Printf("  .   ")
			}
		}
		ctx.Println()
	}
	return nil
}
