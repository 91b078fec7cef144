package backups

import "github.com/charmbracelet/huh"

var confirmFunc = func(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&confirmed).
		WithTheme(huh.ThemeDracula()).
		Run()
	return confirmed, err
}
