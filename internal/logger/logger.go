package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitlog/internal/constants"
)

// Logger is the process-wide logger. Nil until Init is called.
var Logger *log.Logger

// Config controls where logs go and how verbose they are.
type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the default warn level; ignored in debug mode.
	Level string
	// Command is the CLI command being run, attached to every record.
	Command string
}

// FilePath is the log file for a config directory.
func FilePath(configDir string) string {
	return filepath.Join(configDir, constants.LogDirName, constants.AppName+".log")
}

// Init points the global logger at a rotating file under the config
// directory. Debug mode lowers the level to debug and mirrors to stderr.
func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	l := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if cfg.Command != "" {
		l = l.With("cmd", cfg.Command)
	}
	Logger = l
	return nil
}

func parseLevel(s string) (log.Level, error) {
	if s == "" {
		s = constants.DefaultLogLevel
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// WithData tags every later record with the data location. The location
// must already be display-safe.
func WithData(location string) {
	if Logger != nil && location != "" {
		Logger = Logger.With("data", location)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
