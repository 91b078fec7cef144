package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/lock"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a format string.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hints returns remediation steps for failures the user can fix themselves.
func Hints(err error) []string {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, storage.ErrEmbeddedCredentials):
		return []string{
			"PostgreSQL connection strings with embedded credentials are NOT allowed.",
			"Use one of these secure alternatives:",
			"  1. Environment:   export PGPASSWORD=...",
			fmt.Sprintf("  2. .pgpass file:  use a connection string without password: \"postgresql://user@host:5432/%s\"", constants.AppName),
		}
	case stderrors.Is(err, lock.ErrLocked):
		return []string{
			fmt.Sprintf("Another %s process (often the TUI) is writing to the same data.", constants.AppName),
			"Close it and run the command again.",
		}
	case stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return []string{"Set the key with HABITLOG_API_KEY or api_key in the config file instead."}
	}
	return nil
}

// Message is the full text printed for err: the formatted error followed by
// any hints, one per line.
func Message(err error) string {
	if err == nil {
		return ""
	}
	lines := []string{Format(err)}
	for _, h := range Hints(err) {
		lines = append(lines, "       "+h)
	}
	return strings.Join(lines, "\n")
}

// Fatal logs err, prints it with hints to stderr and exits with status 1.
// A nil err is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Message(err))
		os.Exit(1)
	}
}

// Fatalf logs and prints a formatted error, then exits with status 1.
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
