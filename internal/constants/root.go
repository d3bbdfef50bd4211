package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// MatchPolicy selects how subject strings are classified as free periods
type MatchPolicy string

// Outcome is the result tag of a timetable lookup
type Outcome string

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	AppName            = "whosfree"
	DefaultKeyringUser = "store-connection"
	DefaultConfigPath  = "~/.config/whosfree/whosfree.db"
	DefaultTenant      = "default"
	DefaultListenAddr  = ":8080"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "whosfree-"
	BackupFileSuffix = ".db"

	// Lockfile constants
	ServeLockfileName = "whosfree-serve.lock"

	// Live update constants
	UpdateBufferSize    = 10
	ReloadDebounce      = 150 * time.Millisecond
	PostgresMinReconn   = 10 * time.Second
	PostgresMaxReconn   = time.Minute
	PostgresNotifyTopic = "whosfree_updates"

	// Document names shared by every store
	DocRoster       = "roster"
	DocTimetable    = "timetable"
	DocSettings     = "settings"
	DocCatchphrases = "catchphrases"

	// Match policies
	MatchExact     MatchPolicy = "exact"
	MatchSubstring MatchPolicy = "substring"

	// Lookup outcomes
	OutcomeFound            Outcome = "found"
	OutcomePersonNotFound   Outcome = "person_not_found"
	OutcomeWeekNotFound     Outcome = "week_not_found"
	OutcomeDayNotFound      Outcome = "day_not_found"
	OutcomePeriodOutOfRange Outcome = "period_out_of_range"

	// FreeDisplay is shown in place of a free period's subject
	FreeDisplay = "(Free)"

	// Conflict Types
	ConflictDuplicatePersonID  ConflictType = "duplicate_person_id"
	ConflictMissingPersonID    ConflictType = "missing_person_id"
	ConflictNoSchedule         ConflictType = "no_schedule"
	ConflictOrphanSchedule     ConflictType = "orphan_schedule"
	ConflictMissingWeek        ConflictType = "missing_week"
	ConflictMissingDay         ConflictType = "missing_day"
	ConflictShortDay           ConflictType = "short_day"
	ConflictUnknownColor       ConflictType = "unknown_color"
	ConflictDuplicateFreeMatch ConflictType = "duplicate_free_marker"
	ConflictInvalidPolicy      ConflictType = "invalid_match_policy"
)

// Session States
const (
	StateFree SessionState = iota
	StateLessons
	StateDay
	StateSearch
	StatePhrases
	StateSelectSlot
	StateSelectPerson
	StateSearchInput
	StateAddPhrase
)
