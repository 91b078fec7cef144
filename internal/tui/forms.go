package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/models"
)

func newHabitForm(fm *HabitFormModel, existing []models.Habit) *huh.Form {
	options := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		options[i] = huh.NewOption(strings.ToUpper(string(c[:1]))+string(c[1:]), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return errors.New("name is required")
					}
					if _, ok := models.FindByName(existing, s); ok {
						return fmt.Errorf("habit %q already exists", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("Optional").
				Value(&fm.Description),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
		),
	).WithTheme(huh.ThemeDracula())
}

func newNoteForm(fm *NoteFormModel, habitName, day string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(fmt.Sprintf("Note for %s on %s", habitName, day)).
				Description("Leave empty to remove the note").
				CharLimit(500).
				Value(&fm.Text),
		),
	).WithTheme(huh.ThemeDracula())
}
