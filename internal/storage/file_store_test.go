package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitlog/internal/constants"
)

func TestFileStoreGetPut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habits.json")
	store := NewFileStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if _, err := store.Get(constants.StorageKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
	}

	if err := store.Put(constants.StorageKey, []byte(`[]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(constants.StorageKey, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}

	data, err := store.Get(constants.StorageKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Get() = %s", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("data file not at configured path: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("data file permissions = %o, want 600", perm)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the data file, found %d entries", len(entries))
	}
}

func TestFileStoreOtherKeys(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if err := store.Put("settings", []byte(`{}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.json")); err != nil {
		t.Errorf("expected settings.json next to data file: %v", err)
	}
	if _, err := store.Get(constants.StorageKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("collection key should still be empty, got %v", err)
	}
}
