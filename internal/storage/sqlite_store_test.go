package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitlog/internal/constants"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habits.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreInitCreatesTable(t *testing.T) {
	store := setupSQLite(t)

	exists, err := store.tableExists("BLOBS")
	if err != nil {
		t.Fatalf("tableExists() error = %v", err)
	}
	if !exists {
		t.Error("blobs table not created")
	}

	// Init is idempotent
	if err := store.Init(); err != nil {
		t.Errorf("second Init() error = %v", err)
	}
}

func TestSQLiteStoreGetPut(t *testing.T) {
	store := setupSQLite(t)

	if _, err := store.Get(constants.StorageKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
	}

	for _, doc := range []string{`[]`, `[{"id":"a"}]`} {
		if err := store.Put(constants.StorageKey, []byte(doc)); err != nil {
			t.Fatalf("Put(%s) error = %v", doc, err)
		}
	}

	data, err := store.Get(constants.StorageKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != `[{"id":"a"}]` {
		t.Errorf("Get() = %s, want last written document", data)
	}

	var rows int
	if err := store.GetDB().QueryRow("SELECT count(*) FROM blobs").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected upsert to keep one row, got %d", rows)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.db")

	first := NewSQLiteStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := first.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	first.Close()

	second := NewSQLiteStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("reopen Init() error = %v", err)
	}
	defer second.Close()

	data, err := second.Get("k")
	if err != nil || string(data) != "v" {
		t.Errorf("Get() after reopen = %q, %v", data, err)
	}
}

func TestSQLiteStoreNotLoaded(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habits.db"))
	if _, err := store.Get("k"); err == nil {
		t.Error("expected error before Init")
	}
	if err := store.Put("k", nil); err == nil {
		t.Error("expected error before Init")
	}
}
