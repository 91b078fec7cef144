package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/lock"
	"github.com/julianstephens/habitlog/internal/models"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasErrors := false
	fail := func(check string, err error) {
		ctx.Printf("❌ %s: FAIL - %v\n", check, err)
		hasErrors = true
	}

	// Check 1: Storage
	location := ctx.Store.GetConfigPath()
	habits, err := ctx.Adapter.LoadErr()
	if err != nil {
		fail("Storage", err)
	} else {
		ctx.Printf("✓ Storage: OK (%s)\n", location)
	}

	// Check 2: Data integrity
	if err == nil {
		if problems := checkHabits(habits); len(problems) > 0 {
			for _, p := range problems {
				ctx.Printf("⚠ Data: WARNING - %s\n", p)
			}
		} else {
			ctx.Printf("✓ Data: OK (%d habits)\n", len(habits))
		}
	}

	// Check 3: Backups
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	switch {
	case err != nil:
		fail("Backups", err)
	case len(backups) == 0:
		ctx.Printf("⚠ Backups: WARNING - no backups in %s\n", mgr.GetBackupDir())
	default:
		ctx.Printf("✓ Backups: OK (%d, latest %s)\n", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04"))
	}

	// Check 4: Lock
	l, err := lock.Acquire(ctx.StateDir)
	switch {
	case errors.Is(err, lock.ErrLocked):
		ctx.Println("⚠ Lock: WARNING - another habitlog process holds the lock")
	case err != nil:
		fail("Lock", err)
	default:
		if err := l.Release(); err != nil {
			fail("Lock", err)
		} else {
			ctx.Println("✓ Lock: OK")
		}
	}

	// Check 5: Coach credentials
	switch {
	case ctx.Config != nil && ctx.Config.APIKey != "":
		ctx.Println("✓ API key: OK (from config)")
	default:
		if _, err := keyring.GetAPIKey(); err == nil {
			ctx.Println("✓ API key: OK (from keyring)")
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Println("⚠ API key: WARNING - not configured, the coach is disabled")
		} else {
			ctx.Printf("⚠ API key: WARNING - %v\n", err)
		}
	}

	// Check 6: Export directory
	if ctx.Config != nil && ctx.Config.ExportDir != "" {
		if info, err := os.Stat(ctx.Config.ExportDir); err == nil && !info.IsDir() {
			fail("Export dir", fmt.Errorf("%s is not a directory", ctx.Config.ExportDir))
		} else {
			ctx.Printf("✓ Export dir: OK (%s)\n", ctx.Config.ExportDir)
		}
	}

	ctx.Println()
	if hasErrors {
		return fmt.Errorf("diagnostics failed")
	}
	ctx.Println("All checks passed!")
	return nil
}

// checkHabits reports records that load but break collection invariants.
func checkHabits(habits []models.Habit) []string {
	var problems []string
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if h.ID == "" {
			problems = append(problems, fmt.Sprintf("habit %q has no id", h.Name))
		} else if seen[h.ID] {
			problems = append(problems, fmt.Sprintf("duplicate habit id %s", h.ID))
		}
		seen[h.ID] = true
		if h.Name == "" {
			problems = append(problems, fmt.Sprintf("habit %s has an empty name", h.ID))
		}
		if !h.Category.Valid() {
			problems = append(problems, fmt.Sprintf("habit %q has unknown category %q", h.Name, h.Category))
		}
	}
	return problems
}
