package constants

import "time"

const (
	AppName            = "diario"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/diario/diario.json"
	Version            = "v0.3.0"

	// StorageKey is the single key the whole diary document is persisted under.
	StorageKey = "diaryData"

	// DateFormat is the ISO date format used for file names and user input (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format accepted by the agenda command (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the event time format understood by the iCalendar export (HH:MM)
	TimeFormat = "15:04"

	// StatusTimeFormat is the clock format shown in autosave status messages
	StatusTimeFormat = "15:04:05"

	// Autosave constants
	DebounceDelay             = 2000 * time.Millisecond
	DefaultAutoSaveIntervalMs = 30000
	StatusClearDelay          = 3 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "diario-backup-"
	BackupFileSuffix = ".json"

	// Logging constants
	LogDirName  = "logs"
	LogFileName = "diario.log"

	// PreviewLength is the number of content characters shown in day details
	PreviewLength = 100

	// DefaultEventDuration is the length given to timed events in iCalendar exports
	DefaultEventDuration = time.Hour

	// LockFileName marks the config directory of a running TUI
	LockFileName = "diario.lock"

	// Environment variables
	EnvDBConnection = "DIARIO_DB_CONNECTION"
)
