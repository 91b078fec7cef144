package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	nowFunc         = time.Now
)

var errMalformed = errors.New("lockfile is malformed")

// ErrLocked is returned when another live habitlog process holds the lock.
var ErrLocked = errors.New("habit data is in use by another habitlog process")

// Lock is a pid lockfile guarding the habit collection against a second writer.
type Lock struct {
	path string
}

// Path returns the lockfile location for a data directory.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire creates the lockfile in dir. A lockfile left by a process that is
// no longer running (or is some other program reusing the pid) is reclaimed.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	path := Path(dir)
	content := fmt.Sprintf("%d|%s|%s", getpidFunc(), currentExecutable(), nowFunc().UTC().Format(time.RFC3339))

	for attempt := 0; attempt < constants.LockMaxRetries; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired lock", "path", path)
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, herr := readHolder(path)
		if errors.Is(herr, errMalformed) && beingWritten(path) {
			// Another process created the file and has not written its pid yet.
			logger.Debug("Lockfile not yet written, retrying", "path", path)
			time.Sleep(constants.LockRetryDelay)
			continue
		}
		if herr == nil {
			if holder.alive() {
				return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder.pid)
			}
			logger.Warn("Reclaiming stale lock", "path", path, "pid", holder.pid)
		} else if !errors.Is(herr, os.ErrNotExist) {
			logger.Warn("Reclaiming malformed lock", "path", path, "error", herr)
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
		time.Sleep(constants.LockRetryDelay)
	}
	return nil, fmt.Errorf("failed to acquire lock after %d attempts: %w", constants.LockMaxRetries, ErrLocked)
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readHolder(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if holder.pid != getpidFunc() {
		return fmt.Errorf("lockfile now belongs to pid %d", holder.pid)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	logger.Debug("Released lock", "path", l.path)
	return nil
}

type holder struct {
	pid        int
	executable string
}

func (h holder) alive() bool {
	process, err := findProcessFunc(h.pid)
	if err != nil || process == nil {
		return false
	}
	return h.executable == "" || process.Executable() == h.executable
}

func readHolder(path string) (holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return holder{}, errMalformed
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return holder{}, fmt.Errorf("%w: invalid process ID", errMalformed)
	}
	return holder{pid: pid, executable: parts[1]}, nil
}

// beingWritten reports whether the lockfile at path is younger than one retry
// delay.
func beingWritten(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return nowFunc().Sub(info.ModTime()) < constants.LockRetryDelay
}

func currentExecutable() string {
	process, err := findProcessFunc(getpidFunc())
	if err != nil || process == nil {
		return ""
	}
	return process.Executable()
}
