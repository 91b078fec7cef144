package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/export"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

const (
	backupFileSuffix = ".json"
	timestampLayout  = "2006-01-02_15-04"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	counter   int
}

// Manager snapshots the habit collection as JSON backup documents. Snapshots
// go through the storage adapter, so every blob store backend is covered.
type Manager struct {
	adapter   *storage.Adapter
	backupDir string
	now       func() time.Time
}

func NewManager(adapter *storage.Adapter, backupDir string) *Manager {
	return &Manager{
		adapter:   adapter,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes the current collection to a new backup file and prunes
// the oldest files beyond constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation keeps the pre-restore snapshot from pruning the file being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	habits, err := m.adapter.LoadErr()
	if err != nil {
		return "", fmt.Errorf("failed to read current habits: %w", err)
	}
	data, err := export.ToJSON(habits)
	if err != nil {
		return "", err
	}

	path, err := m.uniquePath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Created backup", "path", path, "habits", len(habits))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

// uniquePath returns <prefix>-<YYYY-MM-DD_HH-MM>.json, adding -N on collision.
func (m *Manager) uniquePath() (string, error) {
	base := strings.TrimSuffix(export.Filename(constants.BackupFilePrefix, backupFileSuffix, m.now()), backupFileSuffix)

	path := filepath.Join(m.backupDir, base+backupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, counter, backupFileSuffix))
	}
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, counter, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: timestamp,
			Size:      info.Size(),
			counter:   counter,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].counter > backups[j].counter
	})
	return backups, nil
}

// parseBackupName accepts "<prefix>-<stamp>.json" and "<prefix>-<stamp>-N.json".
func parseBackupName(name string) (time.Time, int, bool) {
	prefix := constants.BackupFilePrefix + "-"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, backupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), backupFileSuffix)

	counter := 0
	if len(stamp) > len(timestampLayout) {
		n, err := strconv.Atoi(strings.TrimPrefix(stamp[len(timestampLayout):], "-"))
		if err != nil || n <= 0 {
			return time.Time{}, 0, false
		}
		counter = n
		stamp = stamp[:len(timestampLayout)]
	}

	timestamp, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return timestamp, counter, true
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the stored collection with the contents of a backup
// file (or any JSON export). The current collection is snapshotted first.
// It returns the path of that snapshot and the number of restored habits.
func (m *Manager) RestoreBackup(backupPath string) (string, int, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read backup file: %w", err)
	}

	habits, err := storage.DecodeHabits(data)
	if err != nil {
		return "", 0, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	snapshot, err := m.createBackup(true)
	if err != nil {
		return "", 0, fmt.Errorf("failed to backup current habits before restore: %w", err)
	}

	if err := m.adapter.SaveErr(habits); err != nil {
		return snapshot, 0, fmt.Errorf("failed to restore habits: %w", err)
	}
	logger.Info("Restored backup", "path", backupPath, "habits", len(habits))
	return snapshot, len(habits), nil
}
