package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/coach"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/lock"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Context is shared by every command.
type Context struct {
	Config  *config.Config
	Store   storage.BlobStore
	Adapter *storage.Adapter
	// StateDir holds the lockfile and backups.
	StateDir string
	Out      io.Writer
	Now      func() time.Time
	// NewBackend builds the coaching backend; tests replace it.
	NewBackend func(cfg coach.BackendConfig) coach.Backend
}

// NewContext wires a context around an opened store.
func NewContext(cfg *config.Config, store storage.BlobStore, stateDir string) *Context {
	return &Context{
		Config:   cfg,
		Store:    store,
		Adapter:  storage.NewAdapter(store),
		StateDir: stateDir,
		Out:      os.Stdout,
		Now:      utils.Now,
		NewBackend: func(cfg coach.BackendConfig) coach.Backend {
			return coach.NewAnthropicBackend(cfg)
		},
	}
}

// StateDirFor picks the directory for lockfile and backups: next to a local
// data file, or the config directory for a database connection.
func StateDirFor(location, configDir string) string {
	if storage.IsPostgres(location) {
		return configDir
	}
	return filepath.Dir(location)
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Habits returns the stored collection; read failures degrade to empty.
func (c *Context) Habits() []models.Habit {
	return c.Adapter.Load()
}

// Mutate applies fn to the stored collection under the single-writer lock
// and persists the result. A collection that cannot be read is never
// overwritten; only a missing blob counts as empty.
func (c *Context) Mutate(fn func(habits []models.Habit) ([]models.Habit, error)) error {
	l, err := lock.Acquire(c.StateDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	habits, err := c.Adapter.LoadErr()
	if err != nil {
		logger.Error("Failed to load habits, refusing to write", "location", c.Store.GetConfigPath(), "error", err)
		return fmt.Errorf("failed to load habits from %s: %w", c.Store.GetConfigPath(), err)
	}

	updated, err := fn(habits)
	if err != nil {
		return err
	}
	if err := c.Adapter.SaveErr(updated); err != nil {
		c.Printf("Warning: failed to save habits: %v\n", err)
		logger.Error("Failed to save habits", "error", err)
	}
	return nil
}

// BackupManager returns the backup manager for this data location.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Adapter, filepath.Join(c.StateDir, constants.BackupDirName))
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// APIKey resolves the coach credential: config/env first, then the OS keyring.
func (c *Context) APIKey() string {
	if c.Config != nil && c.Config.APIKey != "" {
		return c.Config.APIKey
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return ""
	}
	return key
}

// NewCoach builds a coach from configuration.
func (c *Context) NewCoach() *coach.Coach {
	key := c.APIKey()
	cfg := coach.BackendConfig{APIKey: key}
	var timeout time.Duration
	if c.Config != nil {
		cfg.Model = c.Config.Model
		cfg.MaxTokens = c.Config.MaxTokens
		timeout = c.Config.Timeout
	}
	return coach.New(c.NewBackend(cfg), key, timeout)
}

// FindHabit looks a habit up by name (case-insensitive).
func FindHabit(habits []models.Habit, name string) (models.Habit, error) {
	h, ok := models.FindByName(habits, name)
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return h, nil
}
