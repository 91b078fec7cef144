package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
)

// Adapter reads and writes the whole habit collection as one JSON blob.
type Adapter struct {
	store BlobStore
	key   string
}

func NewAdapter(store BlobStore) *Adapter {
	return &Adapter{store: store, key: constants.StorageKey}
}

// Store returns the underlying blob store.
func (a *Adapter) Store() BlobStore {
	return a.store
}

// Load returns the stored collection. A missing blob, a read failure or a
// corrupt document all yield an empty collection; failures are logged.
func (a *Adapter) Load() []models.Habit {
	habits, err := a.LoadErr()
	if err != nil {
		logger.Warn("Failed to load habits, starting with an empty collection", "location", a.store.GetConfigPath(), "error", err)
		return []models.Habit{}
	}
	return habits
}

// LoadErr is Load for callers that need to tell a failure from an empty store.
func (a *Adapter) LoadErr() ([]models.Habit, error) {
	data, err := a.store.Get(a.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Habit{}, nil
		}
		return nil, err
	}
	return DecodeHabits(data)
}

// Save writes the collection, logging and swallowing any failure.
func (a *Adapter) Save(habits []models.Habit) {
	if err := a.SaveErr(habits); err != nil {
		logger.Error("Failed to save habits", "location", a.store.GetConfigPath(), "error", err)
	}
}

// SaveErr writes the collection and reports failures.
func (a *Adapter) SaveErr(habits []models.Habit) error {
	data, err := EncodeHabits(habits)
	if err != nil {
		return err
	}
	if err := a.store.Put(a.key, data); err != nil {
		return err
	}
	logger.Debug("Saved habits", "count", len(habits), "bytes", len(data))
	return nil
}

// EncodeHabits serializes a collection in the stored blob format.
func EncodeHabits(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}

// DecodeHabits parses a stored blob and normalizes records written by
// older versions (missing notes, unknown categories).
func DecodeHabits(data []byte) ([]models.Habit, error) {
	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	if habits == nil {
		return []models.Habit{}, nil
	}
	return models.NormalizeAll(habits), nil
}

// Open picks a blob store for location and initializes it: a postgres URL
// or key=value DSN selects PostgreSQL, a .db/.sqlite file selects SQLite,
// anything else is a JSON file.
func Open(location string) (BlobStore, error) {
	var store BlobStore
	switch {
	case IsPostgres(location):
		store = NewPostgresStore(location)
	case isSQLitePath(location):
		store = NewSQLiteStore(location)
	default:
		store = NewFileStore(location)
	}

	if err := store.Init(); err != nil {
		return nil, err
	}
	logger.Debug("Opened storage", "location", store.GetConfigPath())
	return store, nil
}

// IsPostgres reports whether location is a PostgreSQL URL or key=value DSN.
func IsPostgres(location string) bool {
	return IsPostgresURL(location) || hasDSNParam(location, "host") || hasDSNParam(location, "dbname")
}

func isSQLitePath(location string) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
