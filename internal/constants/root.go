package constants

import "time"

// Frequency represents how often a habit recurs
type Frequency string

// Period is the unit a custom frequency counts in
type Period string

// MonthEndPolicy controls day-of-month matching in months shorter than the
// habit's start day
type MonthEndPolicy string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitual"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	DefaultConfigFile  = "~/.config/habitual/config.toml"
	ConnectionEnvVar   = "HABITUAL_DB_CONNECTION"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Day is the length of a calendar day in UTC
	Day = 24 * time.Hour

	// NextDueHorizonDays bounds the forward search for the next due date.
	// The longest legal gap is a custom monthly rule, so five years covers
	// any sane CustomTimes value.
	NextDueHorizonDays = 5 * 366

	// DefaultLogDays is how many days `habit log` shows when no range is given
	DefaultLogDays = 28

	// Frequency constants
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"

	// Period constants
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"

	// Month-end policies
	MonthEndClamp MonthEndPolicy = "clamp"
	MonthEndSkip  MonthEndPolicy = "skip"

	// Server defaults
	DefaultServerAddr = "127.0.0.1:8787"
	DefaultTimezone   = "Local" // Use system local timezone by default
)

// Session States
const (
	StateHabits SessionState = iota
	StateStats
	StateAddHabit
	StateConfirmDelete
	StateConfirmArchive
)
