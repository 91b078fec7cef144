package constants

import "time"

const (
	AppName            = "habitlog"
	DefaultKeyringUser = "coach-api-key"
	DefaultConfigDir   = "~/.config/habitlog"
	DefaultDataPath    = "~/.config/habitlog/habits.json"
	Version            = "v0.1.0"

	// StorageKey identifies the single blob holding the whole habit collection.
	StorageKey = "habitai_data_v1"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is used in generated filenames (HH-MM)
	TimeFormat = "15-04"

	// Chart label formats
	DayLabelFormat   = "Jan 2"
	MonthLabelFormat = "Jan"

	// Stats windows
	DailyWindowDays     = 14
	MonthlyWindowMonths = 6
	CoachWindowDays     = 7

	// Export constants
	ExportFilePrefix = "habit-tracker-export"
	BackupFilePrefix = "habit-tracker-backup"
	DefaultLookback  = 30

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"

	// Lock constants
	LockfileName   = "habitlog.lock"
	LockMaxRetries = 3
	LockRetryDelay = 100 * time.Millisecond

	// Log rotation
	LogDirName      = "logs"
	LogMaxSizeMB    = 10
	LogMaxBackups   = 3
	LogMaxAgeDays   = 28
	DefaultLogLevel = "warn"

	// Coach defaults
	DefaultModel     = "claude-sonnet-4-5"
	DefaultMaxTokens = 1024
	DefaultTimeout   = 60 * time.Second
)
